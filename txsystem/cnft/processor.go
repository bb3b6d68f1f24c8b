/*
Package cnft implements the registry for compressed assets.

An asset lives as a leaf record whose hash is committed into a fixed
depth commitment tree; the registry stores no leaf contents of its own.
Every operation on an existing leaf carries the full current contents
and a sibling path, the processor recomputes the committed hash, asks
the tree engine to verify and swap it and persists only the few
administrative records that exist outside the tree: the per tree
authority record, the per authority mint allowances and the vouchers of
redeemed leaves. Record reads, validation and staged writes run inside
one database transaction with the engine call as the final step, so a
rejected proof rolls every record change back and no partial state is
ever observable.
*/
package cnft

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/leafmint/leafmint-go/cbor"
	"github.com/leafmint/leafmint-go/kv"
	"github.com/leafmint/leafmint-go/leaf"
	"github.com/leafmint/leafmint-go/metadata"
	"github.com/leafmint/leafmint-go/tree/cmt"
	"github.com/leafmint/leafmint-go/types"
	"github.com/leafmint/leafmint-go/types/hex"
	"github.com/leafmint/leafmint-go/util"
)

// TreeEngine is the commitment tree collaborator. The processor never
// derives tree structure itself: it hands the engine the previous
// hash, the replacement hash and the caller's sibling path and trusts
// the verdict.
type TreeEngine interface {
	// NewTree creates an empty tree of the given depth and returns its
	// fixed leaf capacity.
	NewTree(tree types.Address, depth uint32) (uint64, error)

	// Append commits leafHash at the next free position, returning the
	// position and the new root.
	Append(tree types.Address, leafHash []byte) (uint64, []byte, error)

	// VerifyAndReplace checks that proof places oldHash at index under
	// the current root and, only then, swaps in newHash. Returns the
	// new root.
	VerifyAndReplace(tree types.Address, index uint64, oldHash, newHash []byte, proof *cmt.Proof) ([]byte, error)

	// VerifyAndRemove is VerifyAndReplace with the zero sentinel as
	// the replacement.
	VerifyAndRemove(tree types.Address, index uint64, oldHash []byte, proof *cmt.Proof) ([]byte, error)
}

// AssetMinter is the collaborator that materializes a decompressed
// asset: one unit of the given asset, zero decimal places, delivered
// to the recipient.
type AssetMinter interface {
	MintOne(asset, recipient types.Address, args *metadata.MetadataArgs) error
}

// LeafUpdate reports the outcome of an operation that wrote a leaf.
type LeafUpdate struct {
	Leaf  *leaf.Schema `json:"leaf"`
	Index uint64       `json:"index,string"`
	Root  hex.Bytes    `json:"root"`
}

var (
	bucketTrees    = []byte("trees")
	bucketRequests = []byte("requests")
	bucketVouchers = []byte("vouchers")
)

type Option func(*Processor)

// WithLogger sets the logger. Without it the processor does not log.
func WithLogger(log zerolog.Logger) Option {
	return func(p *Processor) {
		p.log = log
	}
}

// WithAssetMinter sets the collaborator Decompress hands the asset to.
func WithAssetMinter(m AssetMinter) Option {
	return func(p *Processor) {
		p.minter = m
	}
}

// WithMetricsRegistry registers the processor's metrics with reg.
func WithMetricsRegistry(reg prometheus.Registerer) Option {
	return func(p *Processor) {
		p.operations = newOperationsMetric(reg)
	}
}

// Processor executes registry operations. Safe for concurrent use as
// long as the database and the tree engine are.
type Processor struct {
	db         kv.DB
	engine     TreeEngine
	minter     AssetMinter
	log        zerolog.Logger
	operations *prometheus.CounterVec
}

func New(db kv.DB, engine TreeEngine, opts ...Option) (*Processor, error) {
	if db == nil {
		return nil, fmt.Errorf("database is nil")
	}
	if engine == nil {
		return nil, fmt.Errorf("tree engine is nil")
	}
	p := &Processor{
		db:     db,
		engine: engine,
		log:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.operations == nil {
		p.operations = newOperationsMetric(nil)
	}
	return p, nil
}

// GetTreeConfig returns a snapshot of the tree's authority record.
func (p *Processor) GetTreeConfig(tree types.Address) (*TreeConfig, error) {
	var cfg *TreeConfig
	err := p.db.View(func(tx kv.ReadableTx) error {
		var err error
		cfg, err = loadTreeConfig(tx, tree)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// GetMintRequest returns a snapshot of the authority's mint allowance
// on the tree.
func (p *Processor) GetMintRequest(tree, authority types.Address) (*MintRequest, error) {
	var req *MintRequest
	err := p.db.View(func(tx kv.ReadableTx) error {
		var err error
		req, err = loadMintRequest(tx, tree, authority)
		return err
	})
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, ErrRequestNotFound
	}
	return req, nil
}

// GetVoucher returns a snapshot of the voucher of the redeemed leaf
// minted at the given nonce.
func (p *Processor) GetVoucher(tree types.Address, nonce uint64) (*Voucher, error) {
	var v *Voucher
	err := p.db.View(func(tx kv.ReadableTx) error {
		var err error
		v, err = loadVoucher(tx, tree, nonce)
		return err
	})
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, ErrVoucherNotFound
	}
	return v, nil
}

func (p *Processor) observe(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	p.operations.WithLabelValues(op, result).Inc()
}

func requestKey(tree, authority types.Address) []byte {
	return append(tree.Bytes(), authority[:]...)
}

func voucherKey(tree types.Address, nonce uint64) []byte {
	return append(tree.Bytes(), util.Uint64ToLEBytes(nonce)...)
}

func loadTreeConfig(tx kv.ReadableTx, tree types.Address) (*TreeConfig, error) {
	b := tx.GetBucket(bucketTrees)
	if b == nil {
		return nil, ErrTreeNotFound
	}
	data := b.Get(tree[:])
	if data == nil {
		return nil, ErrTreeNotFound
	}
	cfg := &TreeConfig{}
	if err := cbor.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("decoding tree record: %w", err)
	}
	return cfg, nil
}

func saveTreeConfig(tx kv.WritableTx, tree types.Address, cfg *TreeConfig) error {
	b, err := tx.GetBucketOrCreate(bucketTrees)
	if err != nil {
		return err
	}
	data, err := cbor.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding tree record: %w", err)
	}
	return b.Set(tree[:], data)
}

// loadMintRequest returns nil without an error when the authority has
// no request on the tree.
func loadMintRequest(tx kv.ReadableTx, tree, authority types.Address) (*MintRequest, error) {
	b := tx.GetBucket(bucketRequests)
	if b == nil {
		return nil, nil
	}
	data := b.Get(requestKey(tree, authority))
	if data == nil {
		return nil, nil
	}
	req := &MintRequest{}
	if err := cbor.Unmarshal(data, req); err != nil {
		return nil, fmt.Errorf("decoding mint request: %w", err)
	}
	return req, nil
}

func saveMintRequest(tx kv.WritableTx, tree types.Address, req *MintRequest) error {
	b, err := tx.GetBucketOrCreate(bucketRequests)
	if err != nil {
		return err
	}
	data, err := cbor.Marshal(req)
	if err != nil {
		return fmt.Errorf("encoding mint request: %w", err)
	}
	return b.Set(requestKey(tree, req.Authority), data)
}

// loadVoucher returns nil without an error when the leaf minted at
// nonce has no pending voucher.
func loadVoucher(tx kv.ReadableTx, tree types.Address, nonce uint64) (*Voucher, error) {
	b := tx.GetBucket(bucketVouchers)
	if b == nil {
		return nil, nil
	}
	data := b.Get(voucherKey(tree, nonce))
	if data == nil {
		return nil, nil
	}
	v := &Voucher{}
	if err := cbor.Unmarshal(data, v); err != nil {
		return nil, fmt.Errorf("decoding voucher: %w", err)
	}
	return v, nil
}

func saveVoucher(tx kv.WritableTx, tree types.Address, v *Voucher) error {
	b, err := tx.GetBucketOrCreate(bucketVouchers)
	if err != nil {
		return err
	}
	data, err := cbor.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding voucher: %w", err)
	}
	return b.Set(voucherKey(tree, v.Leaf.Nonce), data)
}

// buildLeaf assembles the leaf record committed for the given identity
// and metadata.
func buildLeaf(tree, owner, delegate types.Address, nonce uint64, args *metadata.MetadataArgs) (*leaf.Schema, error) {
	dataHash, err := metadata.HashData(args)
	if err != nil {
		return nil, err
	}
	return leaf.New(tree, owner, delegate, nonce, dataHash, metadata.HashCreators(args.Creators)), nil
}
