// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package wgpudriver

import (
	"fmt"
	"image"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/batch/gfx"
)

const (
	// HAL buffer-to-texture copies require row pitches aligned to
	// 256 bytes.
	copyRowAlignment = 256

	// gpuTimeout bounds fence waits on submitted work.
	gpuTimeout = 5 * time.Second
)

type bufferEntry struct {
	buf      hal.Buffer
	kind     gfx.BufferKind
	stride   int
	capacity int
}

type textureEntry struct {
	tex    hal.Texture
	view   hal.TextureView
	width  int
	height int
	format gputypes.TextureFormat
}

type targetEntry struct {
	color     gfx.TextureID
	depth     hal.Texture
	depthView hal.TextureView
	width     int
	height    int
}

// Driver implements gfx.Driver over gogpu/wgpu's HAL.
type Driver struct {
	device hal.Device
	queue  hal.Queue

	logger atomic.Pointer[slog.Logger]
	nextID atomic.Uint64

	mu       sync.RWMutex
	buffers  map[gfx.BufferID]*bufferEntry
	textures map[gfx.TextureID]*textureEntry
	targets  map[gfx.TargetID]*targetEntry
	shaders  map[gfx.ShaderID]*shaderEntry

	samplerMu sync.Mutex
	samplers  map[gfx.Sampler]hal.Sampler

	pipeMu    sync.RWMutex
	pipelines map[pipelineKey]hal.RenderPipeline

	surfaceMu     sync.RWMutex
	surfaceView   hal.TextureView
	surfaceWidth  int
	surfaceHeight int
	surfaceFormat gputypes.TextureFormat
}

// New creates a driver over an initialized HAL device and queue.
func New(device hal.Device, queue hal.Queue) *Driver {
	d := &Driver{
		device:        device,
		queue:         queue,
		buffers:       make(map[gfx.BufferID]*bufferEntry),
		textures:      make(map[gfx.TextureID]*textureEntry),
		targets:       make(map[gfx.TargetID]*targetEntry),
		shaders:       make(map[gfx.ShaderID]*shaderEntry),
		samplers:      make(map[gfx.Sampler]hal.Sampler),
		pipelines:     make(map[pipelineKey]hal.RenderPipeline),
		surfaceFormat: gputypes.TextureFormatBGRA8Unorm,
	}
	d.logger.Store(gfx.Logger())
	return d
}

// Name identifies the backend for logging.
func (d *Driver) Name() string { return "wgpu" }

// SetLogger installs the structured logger. The gfx device calls this
// when the driver is attached.
func (d *Driver) SetLogger(l *slog.Logger) {
	if l == nil {
		l = gfx.Logger()
	}
	d.logger.Store(l)
}

func (d *Driver) log() *slog.Logger { return d.logger.Load() }

// SetSurface points draws with a zero target at a swapchain texture
// view. Must be called each frame before rendering to the backbuffer.
func (d *Driver) SetSurface(view hal.TextureView, width, height int, format gputypes.TextureFormat) {
	d.surfaceMu.Lock()
	d.surfaceView = view
	d.surfaceWidth = width
	d.surfaceHeight = height
	d.surfaceFormat = format
	d.surfaceMu.Unlock()
}

// SurfaceSize returns the backbuffer size in pixels.
func (d *Driver) SurfaceSize() (int, int) {
	d.surfaceMu.RLock()
	defer d.surfaceMu.RUnlock()
	return d.surfaceWidth, d.surfaceHeight
}

// SupportsFormat reports whether the format can back a sampled texture.
func (d *Driver) SupportsFormat(format gputypes.TextureFormat) bool {
	switch format {
	case gputypes.TextureFormatRGBA8Unorm, gputypes.TextureFormatBGRA8Unorm:
		return true
	default:
		return false
	}
}

func (d *Driver) newID() uint64 { return d.nextID.Add(1) }

// CreateBuffer allocates a HAL buffer of the given kind.
func (d *Driver) CreateBuffer(kind gfx.BufferKind, stride, byteCapacity int) (gfx.BufferID, error) {
	if byteCapacity <= 0 {
		return 0, fmt.Errorf("wgpudriver: buffer capacity %d: %w", byteCapacity, gfx.ErrInvalidSize)
	}

	usage := gputypes.BufferUsageCopyDst
	switch kind {
	case gfx.BufferVertex:
		usage |= gputypes.BufferUsageVertex
	case gfx.BufferIndex:
		usage |= gputypes.BufferUsageIndex
	case gfx.BufferStorage:
		usage |= gputypes.BufferUsageStorage
	default:
		return 0, fmt.Errorf("wgpudriver: unknown buffer kind %d", kind)
	}

	// Copy destinations must be 4-byte aligned in size.
	size := (uint64(byteCapacity) + 3) &^ 3

	buf, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: fmt.Sprintf("batch_%s_buffer", kind),
		Size:  size,
		Usage: usage,
	})
	if err != nil {
		return 0, fmt.Errorf("wgpudriver: create buffer: %w", err)
	}

	id := gfx.BufferID(d.newID())
	d.mu.Lock()
	d.buffers[id] = &bufferEntry{buf: buf, kind: kind, stride: stride, capacity: byteCapacity}
	d.mu.Unlock()

	d.log().Debug("buffer created", "id", uint64(id), "kind", kind.String(), "capacity", byteCapacity)
	return id, nil
}

// UploadBufferData writes data into an existing buffer.
func (d *Driver) UploadBufferData(id gfx.BufferID, byteOffset int, data []byte) error {
	d.mu.RLock()
	entry, ok := d.buffers[id]
	d.mu.RUnlock()
	if !ok {
		return fmt.Errorf("wgpudriver: buffer %d: %w", id, gfx.ErrResourceDisposed)
	}
	if byteOffset < 0 || byteOffset+len(data) > entry.capacity {
		return fmt.Errorf("wgpudriver: upload of %d bytes at %d exceeds capacity %d: %w",
			len(data), byteOffset, entry.capacity, gfx.ErrDataSize)
	}
	if len(data) == 0 {
		return nil
	}
	d.queue.WriteBuffer(entry.buf, uint64(byteOffset), data)
	return nil
}

// DestroyBuffer releases the buffer. Unknown handles are ignored.
func (d *Driver) DestroyBuffer(id gfx.BufferID) {
	d.mu.Lock()
	entry, ok := d.buffers[id]
	if ok {
		delete(d.buffers, id)
	}
	d.mu.Unlock()
	if ok {
		d.device.DestroyBuffer(entry.buf)
	}
}

// CreateTexture allocates a sampleable texture that can also serve as a
// render attachment and copy source for readback.
func (d *Driver) CreateTexture(w, h int, format gputypes.TextureFormat) (gfx.TextureID, error) {
	if w <= 0 || h <= 0 {
		return 0, fmt.Errorf("wgpudriver: texture size %dx%d: %w", w, h, gfx.ErrInvalidSize)
	}
	if !d.SupportsFormat(format) {
		return 0, fmt.Errorf("wgpudriver: format %v: %w", format, gfx.ErrUnsupportedFormat)
	}

	tex, err := d.device.CreateTexture(&hal.TextureDescriptor{
		Label: "batch_texture",
		Size: hal.Extent3D{
			Width:              uint32(w),
			Height:             uint32(h),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage: gputypes.TextureUsageTextureBinding |
			gputypes.TextureUsageRenderAttachment |
			gputypes.TextureUsageCopySrc |
			gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return 0, fmt.Errorf("wgpudriver: create texture: %w", err)
	}

	view, err := d.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:     "batch_texture_view",
		Dimension: gputypes.TextureViewDimension2D,
	})
	if err != nil {
		d.device.DestroyTexture(tex)
		return 0, fmt.Errorf("wgpudriver: create texture view: %w", err)
	}

	id := gfx.TextureID(d.newID())
	d.mu.Lock()
	d.textures[id] = &textureEntry{tex: tex, view: view, width: w, height: h, format: format}
	d.mu.Unlock()

	d.log().Debug("texture created", "id", uint64(id), "width", w, "height", h)
	return id, nil
}

// SetTextureData uploads a tightly packed texel rectangle.
func (d *Driver) SetTextureData(id gfx.TextureID, rect gfx.RectI, data []byte) error {
	d.mu.RLock()
	entry, ok := d.textures[id]
	d.mu.RUnlock()
	if !ok {
		return fmt.Errorf("wgpudriver: texture %d: %w", id, gfx.ErrResourceDisposed)
	}
	if rect.Empty() || rect.X < 0 || rect.Y < 0 ||
		rect.X+rect.W > entry.width || rect.Y+rect.H > entry.height {
		return fmt.Errorf("wgpudriver: rect %+v outside %dx%d texture: %w",
			rect, entry.width, entry.height, gfx.ErrInvalidSize)
	}
	if len(data) != rect.W*rect.H*4 {
		return fmt.Errorf("wgpudriver: got %d bytes for %dx%d rect: %w",
			len(data), rect.W, rect.H, gfx.ErrDataSize)
	}

	d.queue.WriteTexture(
		&hal.ImageCopyTexture{
			Texture:  entry.tex,
			MipLevel: 0,
			Origin:   hal.Origin3D{X: uint32(rect.X), Y: uint32(rect.Y), Z: 0},
		},
		data,
		&hal.ImageDataLayout{
			Offset:       0,
			BytesPerRow:  uint32(rect.W) * 4,
			RowsPerImage: uint32(rect.H),
		},
		&hal.Extent3D{Width: uint32(rect.W), Height: uint32(rect.H), DepthOrArrayLayers: 1},
	)
	return nil
}

// GetTextureData copies the texture through an aligned staging buffer
// and returns its content as an RGBA image.
func (d *Driver) GetTextureData(id gfx.TextureID) (*image.RGBA, error) {
	d.mu.RLock()
	entry, ok := d.textures[id]
	d.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("wgpudriver: texture %d: %w", id, gfx.ErrResourceDisposed)
	}

	w, h := entry.width, entry.height
	unpaddedRow := uint32(w) * 4
	paddedRow := (unpaddedRow + copyRowAlignment - 1) &^ (copyRowAlignment - 1)
	bufSize := uint64(paddedRow) * uint64(h)

	staging, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "batch_readback_staging",
		Size:  bufSize,
		Usage: gputypes.BufferUsageCopyDst | gputypes.BufferUsageMapRead,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpudriver: create staging buffer: %w", err)
	}
	defer d.device.DestroyBuffer(staging)

	encoder, err := d.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "batch_readback"})
	if err != nil {
		return nil, fmt.Errorf("wgpudriver: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("batch_readback"); err != nil {
		return nil, fmt.Errorf("wgpudriver: begin readback encoding: %w", err)
	}

	encoder.TransitionTextures([]hal.TextureBarrier{
		{
			Texture: entry.tex,
			Usage: hal.TextureUsageTransition{
				OldUsage: gputypes.TextureUsageRenderAttachment,
				NewUsage: gputypes.TextureUsageCopySrc,
			},
		},
	})
	encoder.CopyTextureToBuffer(entry.tex, staging, []hal.BufferTextureCopy{
		{
			BufferLayout: hal.ImageDataLayout{
				Offset:       0,
				BytesPerRow:  paddedRow,
				RowsPerImage: uint32(h),
			},
			TextureBase: hal.ImageCopyTexture{Texture: entry.tex, MipLevel: 0},
			Size:        hal.Extent3D{Width: uint32(w), Height: uint32(h), DepthOrArrayLayers: 1},
		},
	})
	encoder.TransitionTextures([]hal.TextureBarrier{
		{
			Texture: entry.tex,
			Usage: hal.TextureUsageTransition{
				OldUsage: gputypes.TextureUsageCopySrc,
				NewUsage: gputypes.TextureUsageRenderAttachment,
			},
		},
	})

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return nil, fmt.Errorf("wgpudriver: end readback encoding: %w", err)
	}

	if err := d.submitAndWait(cmdBuf); err != nil {
		return nil, err
	}

	raw := make([]byte, bufSize)
	mapping, err := d.device.MapBuffer(staging, 0, bufSize)
	if err != nil {
		return nil, fmt.Errorf("wgpudriver: map staging buffer: %w", err)
	}
	copy(raw, unsafe.Slice((*byte)(mapping.Ptr), bufSize))
	if err := d.device.UnmapBuffer(staging); err != nil {
		return nil, fmt.Errorf("wgpudriver: unmap staging buffer: %w", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	bgra := entry.format == gputypes.TextureFormatBGRA8Unorm
	for y := 0; y < h; y++ {
		src := raw[uint32(y)*paddedRow : uint32(y)*paddedRow+unpaddedRow]
		dst := img.Pix[y*img.Stride : y*img.Stride+w*4]
		if bgra {
			for x := 0; x < w; x++ {
				dst[x*4+0] = src[x*4+2]
				dst[x*4+1] = src[x*4+1]
				dst[x*4+2] = src[x*4+0]
				dst[x*4+3] = src[x*4+3]
			}
		} else {
			copy(dst, src)
		}
	}
	return img, nil
}

// DestroyTexture releases the texture and its view.
func (d *Driver) DestroyTexture(id gfx.TextureID) {
	d.mu.Lock()
	entry, ok := d.textures[id]
	if ok {
		delete(d.textures, id)
	}
	d.mu.Unlock()
	if ok {
		d.device.DestroyTextureView(entry.view)
		d.device.DestroyTexture(entry.tex)
	}
}

// CreateTarget wraps a color texture as an offscreen render target,
// optionally attaching a fresh depth-stencil texture.
func (d *Driver) CreateTarget(color gfx.TextureID, depthStencil bool) (gfx.TargetID, error) {
	d.mu.RLock()
	colorEntry, ok := d.textures[color]
	d.mu.RUnlock()
	if !ok {
		return 0, fmt.Errorf("wgpudriver: color texture %d: %w", color, gfx.ErrResourceDisposed)
	}

	entry := &targetEntry{color: color, width: colorEntry.width, height: colorEntry.height}

	if depthStencil {
		depth, err := d.device.CreateTexture(&hal.TextureDescriptor{
			Label: "batch_target_depth",
			Size: hal.Extent3D{
				Width:              uint32(colorEntry.width),
				Height:             uint32(colorEntry.height),
				DepthOrArrayLayers: 1,
			},
			MipLevelCount: 1,
			SampleCount:   1,
			Dimension:     gputypes.TextureDimension2D,
			Format:        gputypes.TextureFormatDepth24PlusStencil8,
			Usage:         gputypes.TextureUsageRenderAttachment,
		})
		if err != nil {
			return 0, fmt.Errorf("wgpudriver: create depth texture: %w", err)
		}
		depthView, err := d.device.CreateTextureView(depth, &hal.TextureViewDescriptor{
			Label:     "batch_target_depth_view",
			Dimension: gputypes.TextureViewDimension2D,
		})
		if err != nil {
			d.device.DestroyTexture(depth)
			return 0, fmt.Errorf("wgpudriver: create depth view: %w", err)
		}
		entry.depth = depth
		entry.depthView = depthView
	}

	id := gfx.TargetID(d.newID())
	d.mu.Lock()
	d.targets[id] = entry
	d.mu.Unlock()

	d.log().Debug("target created", "id", uint64(id),
		"width", entry.width, "height", entry.height, "depth", depthStencil)
	return id, nil
}

// DestroyTarget releases the target and its depth attachment. The
// color texture stays alive; its owner releases it separately.
func (d *Driver) DestroyTarget(id gfx.TargetID) {
	d.mu.Lock()
	entry, ok := d.targets[id]
	if ok {
		delete(d.targets, id)
	}
	d.mu.Unlock()
	if ok && entry.depth != nil {
		d.device.DestroyTextureView(entry.depthView)
		d.device.DestroyTexture(entry.depth)
	}
}

// submitAndWait submits one command buffer and blocks until the GPU
// signals completion.
func (d *Driver) submitAndWait(cmdBuf hal.CommandBuffer) error {
	idx, err := d.queue.Submit([]hal.CommandBuffer{cmdBuf})
	if err != nil {
		return fmt.Errorf("wgpudriver: submit: %w", err)
	}
	if err := d.device.WaitIdle(); err != nil {
		return fmt.Errorf("wgpudriver: wait for gpu: %w", err)
	}
	if completed := d.queue.PollCompleted(); completed < idx {
		return fmt.Errorf("wgpudriver: wait for gpu: submission %d incomplete (completed %d)", idx, completed)
	}
	d.device.FreeCommandBuffer(cmdBuf)
	return nil
}

// halSampler returns a cached HAL sampler for the given state.
func (d *Driver) halSampler(s gfx.Sampler) (hal.Sampler, error) {
	d.samplerMu.Lock()
	defer d.samplerMu.Unlock()
	if cached, ok := d.samplers[s]; ok {
		return cached, nil
	}
	sampler, err := d.device.CreateSampler(&hal.SamplerDescriptor{
		Label:        "batch_sampler",
		AddressModeU: convertWrap(s.WrapX),
		AddressModeV: convertWrap(s.WrapY),
		AddressModeW: gputypes.AddressModeClampToEdge,
		MagFilter:    convertFilter(s.Filter),
		MinFilter:    convertFilter(s.Filter),
		MipmapFilter: convertFilter(s.Filter),
	})
	if err != nil {
		return nil, fmt.Errorf("wgpudriver: create sampler: %w", err)
	}
	d.samplers[s] = sampler
	return sampler, nil
}

// Release destroys every live resource. The driver must not be used
// afterwards.
func (d *Driver) Release() {
	d.mu.Lock()
	buffers, textures, targets, shaders := d.buffers, d.textures, d.targets, d.shaders
	d.buffers = make(map[gfx.BufferID]*bufferEntry)
	d.textures = make(map[gfx.TextureID]*textureEntry)
	d.targets = make(map[gfx.TargetID]*targetEntry)
	d.shaders = make(map[gfx.ShaderID]*shaderEntry)
	d.mu.Unlock()

	d.pipeMu.Lock()
	for _, p := range d.pipelines {
		d.device.DestroyRenderPipeline(p)
	}
	d.pipelines = make(map[pipelineKey]hal.RenderPipeline)
	d.pipeMu.Unlock()

	d.samplerMu.Lock()
	for _, s := range d.samplers {
		d.device.DestroySampler(s)
	}
	d.samplers = make(map[gfx.Sampler]hal.Sampler)
	d.samplerMu.Unlock()

	for _, entry := range targets {
		if entry.depth != nil {
			d.device.DestroyTextureView(entry.depthView)
			d.device.DestroyTexture(entry.depth)
		}
	}
	for _, entry := range shaders {
		entry.destroy(d.device)
	}
	for _, entry := range textures {
		d.device.DestroyTextureView(entry.view)
		d.device.DestroyTexture(entry.tex)
	}
	for _, entry := range buffers {
		d.device.DestroyBuffer(entry.buf)
	}
}
