// Package pipeline ties the individual format decoders together: file
// type detection, the ZND-before-MPD material resolution ordering
// guarantee, and a worker-pool batch runner for decoding many files at
// once.
package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"vagrant-scene/internal/mpd"
	"vagrant-scene/internal/rig"
	"vagrant-scene/internal/seq"
	"vagrant-scene/internal/znd"
)

// Kind identifies which decoder a file belongs to.
type Kind int

const (
	KindUnknown Kind = iota
	KindZND
	KindMPD
	KindWEP
	KindSHP
	KindSEQ
)

func (k Kind) String() string {
	switch k {
	case KindZND:
		return "ZND"
	case KindMPD:
		return "MPD"
	case KindWEP:
		return "WEP"
	case KindSHP:
		return "SHP"
	case KindSEQ:
		return "SEQ"
	default:
		return "unknown"
	}
}

// DetectKind guesses a file's format from its extension.
func DetectKind(path string) Kind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".znd":
		return KindZND
	case ".mpd":
		return KindMPD
	case ".wep":
		return KindWEP
	case ".shp":
		return KindSHP
	case ".seq":
		return KindSEQ
	default:
		return KindUnknown
	}
}

// DecodeResult holds whichever decoded object a DecodeFile call
// produced, tagged by Kind.
type DecodeResult struct {
	Kind Kind
	Znd  *znd.Bank
	Mpd  *mpd.Scene
	Rig  *rig.RiggedModel
	Seq  *seq.Bank
}

// DecodeFile reads path and decodes it according to its detected kind.
// bank is only consulted for MPD files (it may be nil, in which case
// the scene's sub-meshes carry no resolved materials).
func DecodeFile(path string, bank *znd.Bank) (DecodeResult, error) {
	kind := DetectKind(path)
	if kind == KindUnknown {
		return DecodeResult{}, fmt.Errorf("pipeline: %s: unrecognized file extension", path)
	}
	return DecodeFileAs(path, kind, bank)
}

// DecodeFileAs decodes path as the given kind, bypassing extension
// detection. Useful when a file's extension doesn't match its format.
func DecodeFileAs(path string, kind Kind, bank *znd.Bank) (DecodeResult, error) {
	if kind == KindUnknown {
		return DecodeResult{}, fmt.Errorf("pipeline: %s: unrecognized file extension", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return DecodeResult{}, fmt.Errorf("pipeline: %s: %w", path, err)
	}

	switch kind {
	case KindZND:
		b, err := znd.Decode(data)
		if err != nil {
			return DecodeResult{}, fmt.Errorf("pipeline: %s: %w", path, err)
		}
		return DecodeResult{Kind: kind, Znd: b}, nil

	case KindMPD:
		scene, err := mpd.Decode(data, bank)
		if err != nil {
			return DecodeResult{}, fmt.Errorf("pipeline: %s: %w", path, err)
		}
		return DecodeResult{Kind: kind, Mpd: scene}, nil

	case KindWEP:
		m, err := rig.DecodeWEP(data)
		if err != nil {
			return DecodeResult{}, fmt.Errorf("pipeline: %s: %w", path, err)
		}
		return DecodeResult{Kind: kind, Rig: m}, nil

	case KindSHP:
		m, err := rig.DecodeSHP(data)
		if err != nil {
			return DecodeResult{}, fmt.Errorf("pipeline: %s: %w", path, err)
		}
		return DecodeResult{Kind: kind, Rig: m}, nil

	case KindSEQ:
		b, err := seq.Decode(data)
		if err != nil {
			return DecodeResult{}, fmt.Errorf("pipeline: %s: %w", path, err)
		}
		return DecodeResult{Kind: kind, Seq: b}, nil
	}

	return DecodeResult{}, fmt.Errorf("pipeline: %s: unrecognized file extension", path)
}

// DecodeZoneRoom decodes a ZND/MPD pair, enforcing the ordering
// guarantee that the ZND's texture ingest (copy_to_framebuffer for
// every TIM) completes before the MPD's geometry decode resolves any
// materials against it.
func DecodeZoneRoom(zndPath, mpdPath string) (*znd.Bank, *mpd.Scene, error) {
	zndData, err := os.ReadFile(zndPath)
	if err != nil {
		return nil, nil, fmt.Errorf("pipeline: %s: %w", zndPath, err)
	}
	bank, err := znd.Decode(zndData)
	if err != nil {
		return nil, nil, fmt.Errorf("pipeline: %s: %w", zndPath, err)
	}

	mpdData, err := os.ReadFile(mpdPath)
	if err != nil {
		return nil, nil, fmt.Errorf("pipeline: %s: %w", mpdPath, err)
	}
	scene, err := mpd.Decode(mpdData, bank)
	if err != nil {
		return nil, nil, fmt.Errorf("pipeline: %s: %w", mpdPath, err)
	}

	return bank, scene, nil
}

// BatchItem is one unit of work for DecodeMany.
type BatchItem struct {
	Path string
	Bank *znd.Bank
}

// BatchResult is the outcome of decoding one BatchItem.
type BatchResult struct {
	Item   BatchItem
	Result DecodeResult
	Err    error
}

// DecodeMany decodes every item concurrently across a fixed worker
// pool, preserving the input order in the returned slice.
func DecodeMany(items []BatchItem, workers int) []BatchResult {
	if workers <= 0 {
		workers = 1
	}

	results := make([]BatchResult, len(items))
	var processed atomic.Int64

	itemChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range itemChan {
				item := items[idx]
				res, err := DecodeFile(item.Path, item.Bank)
				results[idx] = BatchResult{Item: item, Result: res, Err: err}
				processed.Add(1)
			}
		}()
	}

	for i := range items {
		itemChan <- i
	}
	close(itemChan)
	wg.Wait()

	return results
}
