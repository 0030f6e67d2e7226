package axon

import (
	"fmt"
	"image"
	"image/draw"
	"sync"
	"time"

	"github.com/nfnt/resize"
)

// DefaultCacheSize is the maximum number of cached resample results.
const DefaultCacheSize = 100

// interpolation maps a Filter to its nfnt kernel. Lanczos uses the
// 3-lobe variant so the support radius is 3 source pixels per axis.
func interpolation(f Filter) (resize.InterpolationFunction, error) {
	switch f {
	case FilterNearest:
		return resize.NearestNeighbor, nil
	case FilterBilinear:
		return resize.Bilinear, nil
	case FilterBicubic:
		return resize.Bicubic, nil
	case FilterLanczos:
		return resize.Lanczos3, nil
	default:
		return 0, &UnsupportedSettingError{Setting: "filter", Value: int(f)}
	}
}

// Resample scales img to exactly cols x rows pixels with the selected
// kernel. Out-of-bounds samples clamp to the nearest edge pixel and
// channel overshoot clamps to [0,255]; the result is always a fresh
// opaque NRGBA of the requested dimensions.
func Resample(img image.Image, cols, rows int, filter Filter) (*image.NRGBA, error) {
	if cols <= 0 || rows <= 0 {
		return nil, fmt.Errorf("resample: target %dx%d is not positive", cols, rows)
	}

	interp, err := interpolation(filter)
	if err != nil {
		return nil, err
	}

	resized := resize.Resize(uint(cols), uint(rows), img, interp)
	return toNRGBA(resized), nil
}

// resampleCached is Resample with result memoization keyed by the
// source tag. Tagless calls skip the cache entirely.
func resampleCached(img image.Image, cols, rows int, filter Filter, tag string) (*image.NRGBA, error) {
	if tag == "" {
		return Resample(img, cols, rows, filter)
	}

	key := resampleKey(cols, rows, filter, tag, img.Bounds())
	if cached, ok := globalResampleCache.get(key); ok {
		return cached, nil
	}

	out, err := Resample(img, cols, rows, filter)
	if err != nil {
		return nil, err
	}
	globalResampleCache.set(key, out)
	return out, nil
}

// toNRGBA normalizes any image to opaque NRGBA. Alpha is discarded at
// this point and never reappears downstream.
func toNRGBA(img image.Image) *image.NRGBA {
	bounds := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(out, out.Bounds(), img, bounds.Min, draw.Src)
	for i := 3; i < len(out.Pix); i += 4 {
		out.Pix[i] = 255
	}
	return out
}

// resampleCache caches resample results to keep the interactive
// settings loop snappy when a knob other than the filter changes.
type resampleCache struct {
	cache       map[string]*resampleEntry
	accessOrder []string // LRU tracking
	mutex       sync.RWMutex
	maxSize     int
}

type resampleEntry struct {
	image    *image.NRGBA
	lastUsed int64 // Unix timestamp
}

var globalResampleCache = &resampleCache{
	cache:   make(map[string]*resampleEntry),
	maxSize: DefaultCacheSize,
}

func resampleKey(cols, rows int, filter Filter, tag string, srcBounds image.Rectangle) string {
	return fmt.Sprintf("%dx%d_%d_%s_%dx%d", cols, rows, filter, tag, srcBounds.Dx(), srcBounds.Dy())
}

func (rc *resampleCache) get(key string) (*image.NRGBA, bool) {
	rc.mutex.RLock()
	entry, exists := rc.cache[key]
	rc.mutex.RUnlock()
	if !exists {
		return nil, false
	}
	rc.touch(key)
	return entry.image, true
}

// touch moves a key to the front of the access order.
func (rc *resampleCache) touch(key string) {
	rc.mutex.Lock()
	defer rc.mutex.Unlock()

	for i, k := range rc.accessOrder {
		if k == key {
			rc.accessOrder = append(rc.accessOrder[:i], rc.accessOrder[i+1:]...)
			break
		}
	}
	rc.accessOrder = append([]string{key}, rc.accessOrder...)

	if entry, exists := rc.cache[key]; exists {
		entry.lastUsed = time.Now().Unix()
	}
}

func (rc *resampleCache) set(key string, img *image.NRGBA) {
	rc.mutex.Lock()
	defer rc.mutex.Unlock()

	if entry, exists := rc.cache[key]; exists {
		entry.image = img
		entry.lastUsed = time.Now().Unix()
		for i, k := range rc.accessOrder {
			if k == key {
				rc.accessOrder = append(rc.accessOrder[:i], rc.accessOrder[i+1:]...)
				break
			}
		}
		rc.accessOrder = append([]string{key}, rc.accessOrder...)
		return
	}

	for len(rc.cache) >= rc.maxSize {
		rc.evictLRU()
	}

	rc.cache[key] = &resampleEntry{image: img, lastUsed: time.Now().Unix()}
	rc.accessOrder = append([]string{key}, rc.accessOrder...)
}

func (rc *resampleCache) evictLRU() {
	if len(rc.accessOrder) == 0 {
		return
	}
	lruKey := rc.accessOrder[len(rc.accessOrder)-1]
	rc.accessOrder = rc.accessOrder[:len(rc.accessOrder)-1]
	delete(rc.cache, lruKey)
}

// ClearResampleCache drops all cached resample results.
func ClearResampleCache() {
	globalResampleCache.mutex.Lock()
	globalResampleCache.cache = make(map[string]*resampleEntry)
	globalResampleCache.accessOrder = nil
	globalResampleCache.mutex.Unlock()
}
