package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/session_sealer_mock.go -package=mock

// SessionSealer protects values that are persisted next to the cache but
// must not be readable from it, such as the account session tokens.
//
// Sealing is keyed by a passphrase held only in configuration:
//
//	salt = random 16 bytes
//	key  = Argon2id(passphrase, salt)
//	blob = base64(salt || nonce || AES-GCM(key, nonce, json(value)))
type SessionSealer interface {
	// Seal serializes v to JSON and encrypts it. The result is ASCII and
	// safe to store in a text column.
	Seal(v any) ([]byte, error)

	// Open decrypts a blob produced by Seal and unmarshals it into target
	// (same as json.Unmarshal). A wrong passphrase yields ErrSealBroken.
	Open(blob []byte, target any) error
}
