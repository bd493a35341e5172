package diagio

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strconv"

	"golang.org/x/sync/errgroup"

	"diagdeck/internal/diag"
	"diagdeck/internal/trace"
)

// Result holds the messages decoded from one input.
type Result struct {
	Path     string
	Format   Format
	Messages []diag.Message
	Cached   bool
}

// Loader decodes inputs in parallel.
type Loader struct {
	// Format forces an encoding; FormatAuto detects it per file.
	Format Format
	// Jobs limits concurrent decoders; <= 0 means GOMAXPROCS.
	Jobs int
	// Cache is optional.
	Cache *DiskCache
	// Stdin backs the "-" input; nil means os.Stdin.
	Stdin io.Reader
}

// Load decodes every path. Results keep the order of paths. The first
// failure cancels the remaining work and is returned wrapped with its path.
func (l *Loader) Load(ctx context.Context, paths []string) ([]Result, error) {
	ctx, span := trace.BeginCtx(ctx, trace.ScopeLoad, "load")
	defer span.End(strconv.Itoa(len(paths)) + " inputs")

	if len(paths) == 0 {
		return nil, nil
	}

	jobs := l.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	results := make([]Result, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			res, err := l.loadOne(gctx, path)
			if err != nil {
				return fmt.Errorf("%s: %w", displayName(path), err)
			}
			results[i] = res
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (l *Loader) loadOne(ctx context.Context, path string) (res Result, err error) {
	_, span := trace.BeginCtx(ctx, trace.ScopeFile, "file:"+displayName(path))
	format := l.Format
	if format == FormatAuto {
		format = DetectFormat(path)
	}
	res = Result{Path: path, Format: format}
	defer func() {
		span.WithExtra("format", format.String()).
			WithExtra("cached", strconv.FormatBool(res.Cached)).
			EndErr(err, strconv.Itoa(len(res.Messages))+" messages")
	}()

	data, err := l.read(path)
	if err != nil {
		return res, err
	}

	key := DigestOf(data, format)
	if l.Cache != nil {
		msgs, ok, cacheErr := l.Cache.Get(key)
		if cacheErr != nil {
			trace.Point(ctx, trace.ScopeFile, "cache-error", cacheErr.Error())
		} else if ok {
			res.Messages = msgs
			res.Cached = true
			return res, nil
		}
	}

	msgs, err := DecodeBytes(data, format)
	if err != nil {
		return res, err
	}
	res.Messages = msgs

	if l.Cache != nil {
		if err := l.Cache.Put(key, format, msgs); err != nil {
			trace.Point(ctx, trace.ScopeFile, "cache-error", err.Error())
		}
	}
	return res, nil
}

func (l *Loader) read(path string) ([]byte, error) {
	if path != Stdin {
		return os.ReadFile(path)
	}
	r := l.Stdin
	if r == nil {
		r = os.Stdin
	}
	return io.ReadAll(r)
}

func displayName(path string) string {
	if path == Stdin {
		return "<stdin>"
	}
	return path
}

// Collect classifies every loaded message into a bag bounded by max. A
// message outside the closed domain aborts with an error naming its input.
func Collect(results []Result, max int) (*diag.Bag, error) {
	bag := diag.NewBag(max)
	rep := diag.BagReporter{Bag: bag}
	for i := range results {
		for j := range results[i].Messages {
			if err := rep.Report(results[i].Messages[j]); err != nil {
				return nil, fmt.Errorf("%s: message %d: %w", displayName(results[i].Path), j, err)
			}
		}
	}
	return bag, nil
}
