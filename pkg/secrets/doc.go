// Package secrets provides string encryption for sensitive values that must
// never travel or be stored in plaintext, such as Canvas access tokens.
//
// Values are encrypted with AES-256-GCM under a key derived from the
// application secret via HKDF. Ciphertexts are base64-encoded and carry their
// nonce, so the same Encryptor can decrypt them later.
//
// # Usage
//
//	var cfg secrets.Config
//	config.MustLoad(&cfg)
//
//	enc, err := secrets.New(cfg)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ciphertext, err := enc.Encrypt("raw-canvas-token")
package secrets
