// Package vault owns the on-disk provider API key store: a single JSON
// file that is either legacy plaintext or a versioned encrypted envelope.
// Loads never fail for externally triggerable conditions (missing file,
// malformed JSON, wrong password); they degrade to a well-defined state
// the caller can re-prompt from.
package vault

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/rs/zerolog"

	"careerkit/internal/config"
	"careerkit/internal/crypto"
	"careerkit/internal/models"
)

// Version is the current encrypted store layout version. Any file carrying
// a version field >= 1 is treated as encrypted; files without one are
// legacy plaintext.
const Version = 1

var (
	// ErrUnknownProvider is returned when the provider is not supported
	ErrUnknownProvider = errors.New("unknown provider")
	// ErrNotEncrypted is returned when an encrypted-path write targets a
	// store that is not in encrypted form
	ErrNotEncrypted = errors.New("store is not encrypted")
	// ErrEncrypted is returned when a plaintext-path write targets a store
	// that is in encrypted form, or encryption is enabled twice
	ErrEncrypted = errors.New("store is already encrypted")
	// ErrUnlockFailed is returned when the supplied password does not
	// decrypt the existing store
	ErrUnlockFailed = errors.New("unlock failed: wrong password or corrupted store")
)

// FileState classifies what a load found on disk. Absent and Unreadable
// present identically to callers (empty lists, not encrypted) but stay
// distinct so the degradation is observable.
type FileState int

const (
	// FileAbsent means no store file exists
	FileAbsent FileState = iota
	// FileUnreadable means the file exists but could not be read or parsed;
	// the load degraded to the empty state
	FileUnreadable
	// FileLegacy means the file is in the plaintext layout
	FileLegacy
	// FileEncrypted means the file carries a version field >= 1
	FileEncrypted
)

// String returns a short name for the state
func (s FileState) String() string {
	switch s {
	case FileAbsent:
		return "absent"
	case FileUnreadable:
		return "unreadable"
	case FileLegacy:
		return "legacy"
	case FileEncrypted:
		return "encrypted"
	default:
		return "unknown"
	}
}

// Snapshot is the result of one load: both provider key lists plus the
// lock-state flags the caller drives its prompts from.
type Snapshot struct {
	OpenAIKeys     []models.KeyEntry
	GeminiKeys     []models.KeyEntry
	IsEncrypted    bool
	RequiresUnlock bool
	FileState      FileState
}

// Keys returns the list for the given provider
func (s *Snapshot) Keys(provider models.Provider) []models.KeyEntry {
	if provider == models.ProviderGemini {
		return s.GeminiKeys
	}
	return s.OpenAIKeys
}

// encryptedStore is the on-disk encrypted envelope
type encryptedStore struct {
	Version int    `json:"version"`
	Salt    string `json:"salt"`
	Data    string `json:"data"`
}

// payload is the plaintext layout on disk, and the JSON blob inside the
// encrypted envelope
type payload struct {
	OpenAIKeys []models.KeyEntry `json:"openai_keys"`
	GeminiKeys []models.KeyEntry `json:"gemini_keys"`
}

func (p *payload) keys(provider models.Provider) []models.KeyEntry {
	if provider == models.ProviderGemini {
		return p.GeminiKeys
	}
	return p.OpenAIKeys
}

func (p *payload) setKeys(provider models.Provider, entries []models.KeyEntry) {
	if provider == models.ProviderGemini {
		p.GeminiKeys = entries
	} else {
		p.OpenAIKeys = entries
	}
}

// emptyPayload returns a skeleton with both lists present but empty
func emptyPayload() *payload {
	return &payload{
		OpenAIKeys: []models.KeyEntry{},
		GeminiKeys: []models.KeyEntry{},
	}
}

// Vault manages the on-disk secret store. The password is only ever held
// as a call argument; the vault never persists or logs it.
type Vault struct {
	cfg *config.Config
	log zerolog.Logger
}

// New creates a Vault over the store file named by cfg
func New(cfg *config.Config, log zerolog.Logger) *Vault {
	return &Vault{cfg: cfg, log: log}
}

// Load runs the load state machine and then prepends environment-sourced
// entries to each provider list. It is idempotent and performs no writes.
// Pass an empty password to probe the store without attempting decryption.
func (v *Vault) Load(password string) *Snapshot {
	snap := &Snapshot{
		OpenAIKeys: []models.KeyEntry{},
		GeminiKeys: []models.KeyEntry{},
		FileState:  FileAbsent,
	}

	raw, err := os.ReadFile(v.cfg.SecretsPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// No file: empty, not encrypted
	case err != nil:
		v.log.Warn().Err(err).Msg("secrets store unreadable, treating as empty")
		snap.FileState = FileUnreadable
	default:
		v.loadFromDisk(raw, password, snap)
	}

	v.injectEnv(snap)
	return snap
}

// loadFromDisk fills snap from the raw file contents
func (v *Vault) loadFromDisk(raw []byte, password string, snap *Snapshot) {
	var probe struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		v.log.Warn().Err(err).Msg("secrets store is not valid JSON, treating as empty")
		snap.FileState = FileUnreadable
		return
	}

	if probe.Version >= 1 {
		snap.FileState = FileEncrypted
		snap.IsEncrypted = true
		if password == "" {
			snap.RequiresUnlock = true
			return
		}

		var store encryptedStore
		if err := json.Unmarshal(raw, &store); err != nil {
			v.log.Warn().Err(err).Msg("encrypted store envelope is malformed")
			snap.RequiresUnlock = true
			return
		}

		pl, err := v.decrypt(&store, password)
		if err != nil {
			// Wrong password and corrupted ciphertext present identically:
			// the caller re-prompts rather than seeing an error.
			v.log.Debug().Msg("vault decryption failed")
			snap.RequiresUnlock = true
			return
		}
		snap.OpenAIKeys = pl.OpenAIKeys
		snap.GeminiKeys = pl.GeminiKeys
		return
	}

	var pl payload
	if err := json.Unmarshal(raw, &pl); err != nil {
		v.log.Warn().Err(err).Msg("legacy secrets store is malformed, treating as empty")
		snap.FileState = FileUnreadable
		return
	}
	snap.FileState = FileLegacy
	if pl.OpenAIKeys != nil {
		snap.OpenAIKeys = pl.OpenAIKeys
	}
	if pl.GeminiKeys != nil {
		snap.GeminiKeys = pl.GeminiKeys
	}
}

// injectEnv prepends environment-sourced entries to each provider list
func (v *Vault) injectEnv(snap *Snapshot) {
	creds, err := config.ParseEnvCredentials()
	if err != nil {
		v.log.Warn().Err(err).Msg("failed to read credential env vars")
		return
	}
	if creds.OpenAIKey != "" {
		entry := models.NewEnvEntry(config.EnvOpenAIKey, creds.OpenAIKey)
		snap.OpenAIKeys = append([]models.KeyEntry{entry}, snap.OpenAIKeys...)
	}
	if creds.GeminiKey != "" {
		entry := models.NewEnvEntry(config.EnvGeminiKey, creds.GeminiKey)
		snap.GeminiKeys = append([]models.KeyEntry{entry}, snap.GeminiKeys...)
	}
}

// EnableEncryption migrates the current accessible plaintext state into the
// encrypted layout. Env-sourced entries are stripped and bare entries are
// normalized to the structured shape before encryption. Refuses to run
// against a store that is already encrypted: without the password the
// accessible state is empty and re-encrypting it would destroy the vault.
func (v *Vault) EnableEncryption(password string) error {
	snap := v.Load("")
	if snap.IsEncrypted {
		return ErrEncrypted
	}

	pl := &payload{
		OpenAIKeys: models.NormalizeAll(stripEnv(snap.OpenAIKeys)),
		GeminiKeys: models.NormalizeAll(stripEnv(snap.GeminiKeys)),
	}

	store, err := v.encrypt(pl, password)
	if err != nil {
		return err
	}
	return v.writeJSON(store)
}

// AddKeyEncrypted appends a structured entry to the target provider's list
// and re-encrypts the full merged state under a fresh salt. The password
// must decrypt the existing store.
func (v *Vault) AddKeyEncrypted(provider models.Provider, name, key, password string) error {
	if !provider.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownProvider, provider)
	}

	snap := v.Load(password)
	if !snap.IsEncrypted {
		return ErrNotEncrypted
	}
	if snap.RequiresUnlock {
		return ErrUnlockFailed
	}

	pl := &payload{
		OpenAIKeys: models.NormalizeAll(stripEnv(snap.OpenAIKeys)),
		GeminiKeys: models.NormalizeAll(stripEnv(snap.GeminiKeys)),
	}
	pl.setKeys(provider, append(pl.keys(provider), models.KeyEntry{Name: name, Key: key}))

	store, err := v.encrypt(pl, password)
	if err != nil {
		return err
	}
	return v.writeJSON(store)
}

// AddKeyPlain appends an entry on the non-encrypted path. If the target
// list is still all bare strings it is upgraded to the structured shape
// first. Entries whose key value already exists are not duplicated.
// Refuses to run when the on-disk shape is versioned-encrypted: overwriting
// it with a plaintext skeleton would silently destroy the vault.
func (v *Vault) AddKeyPlain(provider models.Provider, key, name string) error {
	if !provider.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownProvider, provider)
	}
	if v.diskIsEncrypted() {
		return ErrEncrypted
	}

	pl := v.readPlain()
	list := pl.keys(provider)
	if allBare(list) {
		list = models.NormalizeAll(list)
	}
	if !containsKey(list, key) {
		list = append(list, models.KeyEntry{Name: name, Key: key})
	}
	pl.setKeys(provider, list)

	return v.writeJSON(pl)
}

// diskIsEncrypted probes the on-disk shape without decrypting anything
func (v *Vault) diskIsEncrypted() bool {
	raw, err := os.ReadFile(v.cfg.SecretsPath)
	if err != nil {
		return false
	}
	var probe struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil {
		return false
	}
	return probe.Version >= 1
}

// readPlain reads the plaintext layout, starting from an empty skeleton if
// the file is absent or unparsable
func (v *Vault) readPlain() *payload {
	pl := emptyPayload()

	raw, err := os.ReadFile(v.cfg.SecretsPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			v.log.Warn().Err(err).Msg("secrets store unreadable, starting from empty")
		}
		return pl
	}

	var parsed payload
	if err := json.Unmarshal(raw, &parsed); err != nil {
		v.log.Warn().Err(err).Msg("secrets store is malformed, starting from empty")
		return pl
	}
	if parsed.OpenAIKeys != nil {
		pl.OpenAIKeys = parsed.OpenAIKeys
	}
	if parsed.GeminiKeys != nil {
		pl.GeminiKeys = parsed.GeminiKeys
	}
	return pl
}

// encrypt wraps the payload in the versioned envelope under a freshly
// generated salt
func (v *Vault) encrypt(pl *payload, password string) (*encryptedStore, error) {
	plain, err := json.Marshal(pl)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}

	salt, err := crypto.GenerateSalt()
	if err != nil {
		return nil, err
	}

	key := crypto.DeriveKey(password, salt)
	data, err := crypto.Seal(key, plain)
	if err != nil {
		return nil, err
	}

	return &encryptedStore{
		Version: Version,
		Salt:    hex.EncodeToString(salt),
		Data:    data,
	}, nil
}

// decrypt opens the envelope and parses the contained payload
func (v *Vault) decrypt(store *encryptedStore, password string) (*payload, error) {
	salt, err := hex.DecodeString(store.Salt)
	if err != nil {
		return nil, fmt.Errorf("malformed salt: %w", err)
	}

	key := crypto.DeriveKey(password, salt)
	plain, err := crypto.Open(key, store.Data)
	if err != nil {
		return nil, err
	}

	pl := emptyPayload()
	if err := json.Unmarshal(plain, pl); err != nil {
		return nil, fmt.Errorf("failed to parse decrypted payload: %w", err)
	}
	return pl, nil
}

// writeJSON overwrites the store file with doc, creating the data directory
// on first save. Sets permissions to 0600 (owner read/write only).
func (v *Vault) writeJSON(doc any) error {
	if err := v.cfg.EnsureDataDir(); err != nil {
		return err
	}
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal store: %w", err)
	}
	if err := os.WriteFile(v.cfg.SecretsPath, raw, 0600); err != nil {
		return fmt.Errorf("failed to write store: %w", err)
	}
	return nil
}

// stripEnv drops environment-sourced entries before a save
func stripEnv(entries []models.KeyEntry) []models.KeyEntry {
	kept := make([]models.KeyEntry, 0, len(entries))
	for _, e := range entries {
		if !e.FromEnv() {
			kept = append(kept, e)
		}
	}
	return kept
}

// allBare reports whether every entry is still in the bare-string shape
func allBare(entries []models.KeyEntry) bool {
	for _, e := range entries {
		if !e.IsBare() {
			return false
		}
	}
	return true
}

// containsKey reports whether any entry (bare or structured) holds the
// given key value
func containsKey(entries []models.KeyEntry, key string) bool {
	for _, e := range entries {
		if e.Key == key {
			return true
		}
	}
	return false
}
