// Package settings provides the string keyed settings used by the slicing pipeline. A Store holds values and resolves
// keys it does not have through its parent, a Proxy forwards everything to another Resolver so that a specialized
// view (for example the settings of one extruder) can be handed out without copying any data. Both embed Accessors,
// which convert the raw strings into the typed values the pipeline works with.
//
// Nothing in this package returns an error. Missing and malformed settings degrade to a usable default and are
// reported through the logger, so that a slice is never aborted because of configuration alone.
package settings

import (
	"io"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/ekristen/libslice/pkg/registry"
)

// Resolver is the capability shared by every node in a settings chain
type Resolver interface {
	SetSetting(key, value string)
	GetSettingString(key string) string
}

// chained is implemented by resolvers that defer to another resolver
type chained interface {
	Parent() Resolver
}

// logged is implemented by resolvers that carry a diagnostics logger
type logged interface {
	Logger() *logrus.Entry
}

// Options are the options for creating a new Store.
type Options struct {
	// Parent is consulted for keys the store does not have. It is not owned by the store and may be nil.
	Parent Resolver

	// Registry is used to report writes of unknown keys. Defaults to the process wide registry.
	Registry registry.Checker

	// Log is the logrus entry diagnostics are written to. Defaults to a logger that discards all output.
	Log *logrus.Entry

	// NoUnregisteredWarnings disables the warning that is logged when an unregistered key is written.
	NoUnregisteredWarnings bool
}

// Store owns a set of settings and delegates lookups of keys it does not have to its parent. A key present in the
// store always shadows the same key further up the chain.
//
// The map is guarded so that concurrent reads are safe, including the read that caches a missing key. Ordering of
// writes relative to reads from other goroutines is up to the caller.
type Store struct {
	Accessors

	mu     sync.RWMutex
	values map[string]string
	parent Resolver

	registry         registry.Checker
	log              *logrus.Entry
	warnUnregistered bool
}

// New creates a new, empty Store
func New(opts Options) *Store {
	s := &Store{
		values:           make(map[string]string),
		registry:         opts.Registry,
		log:              opts.Log,
		warnUnregistered: !opts.NoUnregisteredWarnings,
	}

	if s.registry == nil {
		s.registry = registry.Global{}
	}

	if s.log == nil {
		// The only way output is logged is if the instantiating tool provides a logger
		logger := logrus.New()
		logger.SetOutput(io.Discard)
		s.log = logger.WithField("component", "settings")
	}

	s.Accessors = Access(s)
	s.SetParent(opts.Parent)

	return s
}

// SetParent replaces the parent of the store. It panics if the store is already part of the parent's chain, settings
// chains are trees and may never loop back onto themselves.
func (s *Store) SetParent(parent Resolver) {
	for p := parent; p != nil; {
		if p == Resolver(s) {
			panic("settings: parent chain contains the store itself")
		}

		c, ok := p.(chained)
		if !ok {
			break
		}
		p = c.Parent()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.parent = parent
}

// Parent returns the parent of the store, nil if it has none
func (s *Store) Parent() Resolver {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.parent
}

// Logger returns the logrus entry diagnostics are written to
func (s *Store) Logger() *logrus.Entry {
	return s.log
}

// SetSetting stores value under key. Writing a key the registry does not know is allowed, settings that are still
// being introduced are not registered yet, but it is logged as a warning.
func (s *Store) SetSetting(key, value string) {
	if s.warnUnregistered && !s.registry.SettingExists(key) {
		s.log.
			WithField("key", key).
			WithField("value", value).
			Warnf("setting an unregistered setting %s to %s", key, value)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
}

// GetSettingString returns the value of key. Keys that are not set on the store are looked up on the parent. When the
// store has no parent and the key was never set, an empty string is cached for the key and the miss is logged once,
// every later lookup of the same key returns the cached empty string without logging.
func (s *Store) GetSettingString(key string) string {
	s.mu.RLock()
	value, ok := s.values[key]
	parent := s.parent
	s.mu.RUnlock()

	if ok {
		return value
	}

	if parent != nil {
		return parent.GetSettingString(key)
	}

	s.mu.Lock()
	if value, ok := s.values[key]; ok {
		s.mu.Unlock()
		return value
	}
	s.values[key] = ""
	s.mu.Unlock()

	s.log.WithField("key", key).Errorf("setting %s was never set, using an empty value", key)

	return ""
}

// HasSetting returns true if key is set on this store, the parent chain is not consulted
func (s *Store) HasSetting(key string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.values[key]
	return ok
}

// Keys returns the sorted keys set on this store
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]string, 0, len(s.values))
	for k := range s.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return keys
}

// Values returns a copy of the settings set on this store
func (s *Store) Values() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	values := make(map[string]string, len(s.values))
	for k, v := range s.values {
		values[k] = v
	}

	return values
}

// Proxy holds no settings of its own, every read and write is forwarded to its delegate
type Proxy struct {
	Accessors

	delegate Resolver
}

// NewProxy creates a Proxy forwarding to delegate
func NewProxy(delegate Resolver) *Proxy {
	if delegate == nil {
		panic("settings: proxy requires a delegate")
	}

	p := &Proxy{
		delegate: delegate,
	}
	p.Accessors = Access(p)

	return p
}

// SetSetting forwards the write to the delegate
func (p *Proxy) SetSetting(key, value string) {
	p.delegate.SetSetting(key, value)
}

// GetSettingString forwards the lookup to the delegate
func (p *Proxy) GetSettingString(key string) string {
	return p.delegate.GetSettingString(key)
}

// Parent returns the delegate of the proxy
func (p *Proxy) Parent() Resolver {
	return p.delegate
}

// Logger returns the logger of the delegate, nil if the delegate has none
func (p *Proxy) Logger() *logrus.Entry {
	if l, ok := p.delegate.(logged); ok {
		return l.Logger()
	}
	return nil
}

// local is implemented by resolvers that store settings themselves
type local interface {
	HasSetting(key string) bool
	Values() map[string]string
}

// Lookup resolves key along the chain starting at r without side effects. Unlike GetSettingString a miss is not
// cached and not logged, ok is false instead. Chains that contain resolvers of other types end the search there.
func Lookup(r Resolver, key string) (value string, ok bool) {
	for r != nil {
		if l, isLocal := r.(local); isLocal && l.HasSetting(key) {
			return r.GetSettingString(key), true
		}

		c, isChained := r.(chained)
		if !isChained {
			break
		}
		r = c.Parent()
	}

	return "", false
}

// Flatten returns every setting visible from r, the value closest to r wins
func Flatten(r Resolver) map[string]string {
	var chain []local
	for r != nil {
		if l, ok := r.(local); ok {
			chain = append(chain, l)
		}

		c, ok := r.(chained)
		if !ok {
			break
		}
		r = c.Parent()
	}

	values := make(map[string]string)
	for i := len(chain) - 1; i >= 0; i-- {
		for k, v := range chain[i].Values() {
			values[k] = v
		}
	}

	return values
}
