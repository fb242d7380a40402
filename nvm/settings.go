package nvm

import bolt "go.etcd.io/bbolt"

// blindSigningKey holds the single settings byte gating script
// transactions.
var blindSigningKey = []byte("blind-signing")

// Settings is the persisted device configuration. Updates go through a
// single write transaction, so a power failure leaves either the old or
// the new value, never a torn one.
type Settings struct {
	store *Store
}

// Settings returns the settings record of the store.
func (s *Store) Settings() *Settings {
	return &Settings{store: s}
}

// BlindSigningEnabled reports whether script transactions may be signed.
func (s *Settings) BlindSigningEnabled() bool {
	var enabled bool
	s.store.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(settingsBucket).Get(blindSigningKey)
		enabled = len(v) == 1 && v[0] == 1
		return nil
	})
	return enabled
}

// SetBlindSigning persists the blind-signing flag.
func (s *Settings) SetBlindSigning(enabled bool) error {
	return s.store.db.Update(func(tx *bolt.Tx) error {
		v := []byte{0}
		if enabled {
			v[0] = 1
		}
		return tx.Bucket(settingsBucket).Put(blindSigningKey, v)
	})
}

// ToggleBlindSigning flips the blind-signing flag.
func (s *Settings) ToggleBlindSigning() error {
	return s.SetBlindSigning(!s.BlindSigningEnabled())
}
