// Package exec holds ambient support for callers that parse the same
// handful of expression shapes repeatedly: a fingerprint-keyed parse
// cache and an optional namespace allowlist check. Nothing in this
// package participates in building the AST itself; expr.ParseString
// remains pure and cache-free.
package exec

import (
	"container/list"
	"strconv"
	"sync"

	u "github.com/araddon/gou"
	memdb "github.com/hashicorp/go-memdb"

	"github.com/fuhongbo/grapheme/expr"
)

const cacheTable = "parses"

func cacheSchema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			cacheTable: {
				Name: cacheTable,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:    "id",
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "Key"},
					},
				},
			},
		},
	}
}

type cacheEntry struct {
	Key  string
	Expr *expr.Expression
}

// Cache is a bounded, fingerprint-keyed cache of previously parsed
// expressions. A successfully parsed tree is immutable once returned,
// so handing the same *expr.Expression to multiple callers is safe.
//
// Lookups are keyed on expr.Fingerprint(root), which hashes every
// node's Kind/Op/value (including literal text), so two expressions
// that share a tree shape but differ in a literal get different cache
// keys.
type Cache struct {
	mu       sync.Mutex
	db       *memdb.MemDB
	order    *list.List
	elements map[string]*list.Element
	capacity int
}

// NewCache builds a Cache holding at most capacity entries, evicting
// the least recently inserted entry once full.
func NewCache(capacity int) (*Cache, error) {
	if capacity <= 0 {
		capacity = 1
	}
	db, err := memdb.NewMemDB(cacheSchema())
	if err != nil {
		return nil, err
	}
	return &Cache{
		db:       db,
		order:    list.New(),
		elements: make(map[string]*list.Element),
		capacity: capacity,
	}, nil
}

func cacheKey(root *expr.Node) string {
	return strconv.FormatUint(expr.Fingerprint(root), 16)
}

// Get returns the cached expression for root's fingerprint, if present.
func (c *Cache) Get(root *expr.Node) (*expr.Expression, bool) {
	key := cacheKey(root)
	txn := c.db.Txn(false)
	raw, err := txn.First(cacheTable, "id", key)
	if err != nil || raw == nil {
		u.Debugf("exec.Cache miss: %s", key)
		return nil, false
	}
	u.Debugf("exec.Cache hit: %s", key)
	return raw.(*cacheEntry).Expr, true
}

// Put stores ex under its root's fingerprint, and evicts the oldest
// entry if the cache is now over capacity.
func (c *Cache) Put(ex *expr.Expression) error {
	key := cacheKey(ex.Root)

	c.mu.Lock()
	defer c.mu.Unlock()

	txn := c.db.Txn(true)
	if err := txn.Insert(cacheTable, &cacheEntry{Key: key, Expr: ex}); err != nil {
		txn.Abort()
		return err
	}
	txn.Commit()

	if el, ok := c.elements[key]; ok {
		c.order.MoveToBack(el)
	} else {
		c.elements[key] = c.order.PushBack(key)
	}

	for c.order.Len() > c.capacity {
		c.evictOldestLocked()
	}
	return nil
}

func (c *Cache) evictOldestLocked() {
	oldest := c.order.Front()
	if oldest == nil {
		return
	}
	key := oldest.Value.(string)
	c.order.Remove(oldest)
	delete(c.elements, key)

	txn := c.db.Txn(true)
	_, _ = txn.DeleteAll(cacheTable, "id", key)
	txn.Commit()
	u.Debugf("exec.Cache evict: %s", key)
}

// Len reports the number of entries currently cached.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
