package store

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// IdentityProvider hands out this installation's pseudo-identity token. The
// token gates delete visibility only; it is self-assigned and forgeable, not
// a security boundary.
type IdentityProvider struct {
	kv *FileStore

	mu     sync.Mutex
	cached string
}

// NewIdentityProvider creates a provider backed by the given byte store.
func NewIdentityProvider(kv *FileStore) *IdentityProvider {
	return &IdentityProvider{kv: kv}
}

// Identity returns the stable device token, generating and persisting one on
// first use. If persisting fails the generated token is still used for the
// lifetime of the process, which degrades to a fresh identity per run.
func (p *IdentityProvider) Identity() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cached != "" {
		return p.cached
	}
	if v, ok := p.kv.Get(KeyIdentity); ok && strings.HasPrefix(v, "user_") {
		p.cached = strings.TrimSpace(v)
		return p.cached
	}

	token := fmt.Sprintf("user_%d_%s", time.Now().UnixMilli(), randomSuffix())
	_ = p.kv.Set(KeyIdentity, token)
	p.cached = token
	return token
}

func randomSuffix() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:9]
}
