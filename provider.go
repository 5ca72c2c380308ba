package packbuf

import (
	"log/slog"
	"math/bits"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	pkgerrors "github.com/pkg/errors"
	"github.com/puzpuzpuz/xsync/v3"

	"github.com/drpcorg/packbuf/buffer"
	"github.com/drpcorg/packbuf/utils"
)

// BufferProvider decides, per serialization, whether to reuse, relocate
// or reallocate storage. ReuseOrRealloc must return a buffer whose body
// equals buf's body with at least prefix/suffix spare capacity around
// it. On error the input buffer must be left untouched; the error
// payload is provider-defined and opaque to the serializer.
type BufferProvider interface {
	ReuseOrRealloc(buf TargetBuffer, prefix, suffix int) (TargetBuffer, error)
}

// Target is the sum type providers return: either the caller's own
// buffer (reused or relocated in place) or a freshly allocated one.
type Target = buffer.Either[TargetBuffer, *buffer.Buf]

// SystemProvider acquires buffers with plain allocations. Reuse succeeds
// when the existing prefix and suffix already suffice, or when total
// capacity suffices and the body is no longer than MaxCopyBytes, in
// which case it is relocated with one in-place copy.
type SystemProvider struct {
	// MaxCopyBytes bounds the body size worth relocating instead of
	// reallocating. Zero means no bound.
	MaxCopyBytes int
	// MaxAlloc caps a single allocation. Zero means no cap.
	MaxAlloc int
}

// reuseInPlace reuses buf as is, or relocates its body within existing
// capacity. ok is false when a fresh allocation is needed.
func reuseInPlace(buf TargetBuffer, prefix, suffix, total, maxCopy int) bool {
	if buf.PrefixLen() >= prefix && buf.SuffixLen() >= suffix {
		return true
	}
	if buf.Capacity() < total || (maxCopy != 0 && buf.Len() > maxCopy) {
		return false
	}
	n := buf.Len()
	body := buffer.Range{Start: buf.PrefixLen(), End: buf.PrefixLen() + n}
	buf.Reset()
	buf.CopyWithin(body, prefix)
	buf.Shrink(buffer.Range{Start: prefix, End: prefix + n})
	return true
}

func totalLen(buf TargetBuffer, prefix, suffix int) (int, error) {
	spare, ok := utils.CheckedAdd(prefix, suffix)
	if !ok {
		return 0, pkgerrors.Errorf("prefix %d + suffix %d overflow", prefix, suffix)
	}
	total, ok := utils.CheckedAdd(spare, buf.Len())
	if !ok {
		return 0, pkgerrors.Errorf("buffer of %d bytes with %d spare overflows", buf.Len(), spare)
	}
	return total, nil
}

func (p SystemProvider) ReuseOrRealloc(buf TargetBuffer, prefix, suffix int) (TargetBuffer, error) {
	total, err := totalLen(buf, prefix, suffix)
	if err != nil {
		return nil, err
	}
	if p.MaxAlloc != 0 && total > p.MaxAlloc {
		return nil, pkgerrors.Errorf("%d bytes exceed allocation cap %d", total, p.MaxAlloc)
	}
	if reuseInPlace(buf, prefix, suffix, total, p.MaxCopyBytes) {
		return buffer.EitherA[TargetBuffer, *buffer.Buf](buf), nil
	}
	fresh := buffer.AllocBuf(prefix, buf.Len(), suffix)
	buffer.Copy(fresh, buf)
	return buffer.EitherB[TargetBuffer](fresh), nil
}

// PoolProvider is a SystemProvider that recycles released storage
// through size-class free lists behind an LRU, so steady-state
// serialization stops allocating. Safe for concurrent use; the buffers
// themselves still have exactly one owner at a time.
type PoolProvider struct {
	mu      sync.Mutex
	classes *lru.Cache[int, [][]byte]

	maxCopyBytes int
	maxAlloc     int
	log          utils.Logger

	reuses      *xsync.Counter
	relocations *xsync.Counter
	hits        *xsync.Counter
	misses      *xsync.Counter
	releases    *xsync.Counter
}

type PoolOption func(*PoolProvider)

// WithLogger routes pool diagnostics to log.
func WithLogger(log utils.Logger) PoolOption {
	return func(p *PoolProvider) { p.log = log }
}

// WithMaxCopyBytes bounds the body size worth relocating in place.
func WithMaxCopyBytes(n int) PoolOption {
	return func(p *PoolProvider) { p.maxCopyBytes = n }
}

// WithMaxAlloc caps a single allocation.
func WithMaxAlloc(n int) PoolOption {
	return func(p *PoolProvider) { p.maxAlloc = n }
}

const poolClasses = 32

func NewPoolProvider(opts ...PoolOption) *PoolProvider {
	classes, _ := lru.New[int, [][]byte](poolClasses)
	p := &PoolProvider{
		classes:     classes,
		log:         utils.NewDefaultLogger(slog.LevelError),
		reuses:      xsync.NewCounter(),
		relocations: xsync.NewCounter(),
		hits:        xsync.NewCounter(),
		misses:      xsync.NewCounter(),
		releases:    xsync.NewCounter(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// sizeClass rounds n up to the next power of two, with a small floor so
// tiny packets share a class.
func sizeClass(n int) int {
	const floor = 64
	if n <= floor {
		return floor
	}
	return 1 << bits.Len(uint(n-1))
}

func (p *PoolProvider) take(n int) []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	for class := sizeClass(n); class > 0; class <<= 1 {
		free, ok := p.classes.Get(class)
		if !ok || len(free) == 0 {
			continue
		}
		data := free[len(free)-1]
		p.classes.Add(class, free[:len(free)-1])
		return data
	}
	return nil
}

func (p *PoolProvider) ReuseOrRealloc(buf TargetBuffer, prefix, suffix int) (TargetBuffer, error) {
	total, err := totalLen(buf, prefix, suffix)
	if err != nil {
		return nil, err
	}
	if p.maxAlloc != 0 && total > p.maxAlloc {
		return nil, pkgerrors.Errorf("%d bytes exceed allocation cap %d", total, p.maxAlloc)
	}
	if buf.PrefixLen() >= prefix && buf.SuffixLen() >= suffix {
		p.reuses.Inc()
		return buffer.EitherA[TargetBuffer, *buffer.Buf](buf), nil
	}
	if reuseInPlace(buf, prefix, suffix, total, p.maxCopyBytes) {
		p.relocations.Inc()
		return buffer.EitherA[TargetBuffer, *buffer.Buf](buf), nil
	}
	data := p.take(total)
	if data == nil {
		p.misses.Inc()
		p.log.Debug("pool miss", "total", total, "class", sizeClass(total))
		data = make([]byte, sizeClass(total))
	} else {
		p.hits.Inc()
	}
	fresh := buffer.NewBuf(data, buffer.Range{Start: prefix, End: prefix + buf.Len()})
	buffer.Copy(fresh, buf)
	return buffer.EitherB[TargetBuffer](fresh), nil
}

// Release returns a no-longer-needed buffer's storage to the pool. The
// caller gives up ownership.
func (p *PoolProvider) Release(buf TargetBuffer) {
	buf.Reset()
	data := buf.Bytes()
	if len(data) == 0 {
		return
	}
	// Index under the largest class the storage fully covers, so a
	// take() of that class never comes up short. Storage below the
	// smallest class is not worth pooling.
	class := 1 << (bits.Len(uint(len(data))) - 1)
	if class < sizeClass(0) {
		return
	}
	p.mu.Lock()
	free, _ := p.classes.Get(class)
	p.classes.Add(class, append(free, data[:class]))
	p.mu.Unlock()
	p.releases.Inc()
}

// PoolStats is a point-in-time snapshot of provider activity.
type PoolStats struct {
	Reuses      int64
	Relocations int64
	Hits        int64
	Misses      int64
	Releases    int64
}

func (p *PoolProvider) Stats() PoolStats {
	return PoolStats{
		Reuses:      p.reuses.Value(),
		Relocations: p.relocations.Value(),
		Hits:        p.hits.Value(),
		Misses:      p.misses.Value(),
		Releases:    p.releases.Value(),
	}
}
