package renderer

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/Carmen-Shannon/oxy-room/engine/camera"
	"github.com/Carmen-Shannon/oxy-room/engine/light"
	"github.com/Carmen-Shannon/oxy-room/engine/model"
	"github.com/cogentcore/webgpu/wgpu"
)

// gpuMesh holds the uploaded buffers of one batch version.
type gpuMesh struct {
	version    uint64
	vertex     *wgpu.Buffer
	index      *wgpu.Buffer
	indexCount uint32
}

func (m *gpuMesh) release() {
	if m.vertex != nil {
		m.vertex.Release()
	}
	if m.index != nil {
		m.index.Release()
	}
}

type wgpuRendererBackendImpl struct {
	mu     *sync.Mutex
	device *wgpu.Device
	queue  *wgpu.Queue

	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	surface  *wgpu.Surface

	surfaceFormat    *wgpu.TextureFormat
	msaaTexture      *wgpu.Texture
	msaaTextureView  *wgpu.TextureView
	depthTexture     *wgpu.Texture
	depthTextureView *wgpu.TextureView

	presentMode wgpu.PresentMode
	sampleCount MSAASampleCount

	pipeline     *wgpu.RenderPipeline
	bindGroup    *wgpu.BindGroup
	cameraBuffer *wgpu.Buffer
	lightBuffer  *wgpu.Buffer

	// Directional shadow map. Receivers bind a group that samples it; every other
	// batch binds the same map behind a uniform with shadows disabled.
	shadowPipeline    *wgpu.RenderPipeline
	shadowPassGroup   *wgpu.BindGroup
	shadowLayout      *wgpu.BindGroupLayout
	receiverGroup     *wgpu.BindGroup
	nonReceiverGroup  *wgpu.BindGroup
	shadowBuffer      *wgpu.Buffer
	noShadowBuffer    *wgpu.Buffer
	shadowSampler     *wgpu.Sampler
	shadowTexture     *wgpu.Texture
	shadowTextureView *wgpu.TextureView
	shadowMapSize     int

	meshes map[string]*gpuMesh
}

var _ rendererBackend = &wgpuRendererBackendImpl{}

func newWGPURendererBackend(surfaceDescriptor *wgpu.SurfaceDescriptor, forceFallbackAdapter bool, mode PresentMode, sampleCount MSAASampleCount) (*wgpuRendererBackendImpl, error) {
	runtime.LockOSThread()
	b := &wgpuRendererBackendImpl{
		mu:          &sync.Mutex{},
		instance:    wgpu.CreateInstance(nil),
		presentMode: wgpu.PresentModeFifo,
		sampleCount: sampleCount,
		meshes:      make(map[string]*gpuMesh),
	}
	if mode == PresentModeUncapped {
		b.presentMode = wgpu.PresentModeImmediate
	}
	b.surface = b.instance.CreateSurface(surfaceDescriptor)

	a, err := b.instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    b.surface,
	})
	if err != nil {
		return nil, fmt.Errorf("request adapter: %w", err)
	}
	b.adapter = a

	d, err := a.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
	})
	if err != nil {
		return nil, fmt.Errorf("request device: %w", err)
	}
	b.device = d
	b.queue = d.GetQueue()

	var cu camera.GPUCameraUniform
	b.cameraBuffer, err = d.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Camera Uniform Buffer",
		Size:  uint64(cu.Size()),
		Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	var gl light.GPULight
	b.lightBuffer, err = d.CreateBuffer(&wgpu.BufferDescriptor{
		Label: "Light Storage Buffer",
		Size:  uint64(16 + light.MaxGPULights*gl.Size()),
		Usage: wgpu.BufferUsageStorage | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}

	var su light.GPUShadowUniform
	for _, buf := range []**wgpu.Buffer{&b.shadowBuffer, &b.noShadowBuffer} {
		*buf, err = d.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "Shadow Uniform Buffer",
			Size:  uint64(su.Size()),
			Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return nil, err
		}
	}
	b.shadowSampler, err = d.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         "Shadow Comparison Sampler",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		Compare:       wgpu.CompareFunctionLess,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return nil, fmt.Errorf("create comparison sampler: %w", err)
	}
	return b, nil
}

func (b *wgpuRendererBackendImpl) ConfigureSurface(width, height int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	capabilities := b.surface.GetCapabilities(b.adapter)
	b.surfaceFormat = &capabilities.Formats[0]

	b.surface.Configure(b.adapter, b.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      *b.surfaceFormat,
		Width:       uint32(width),
		Height:      uint32(height),
		PresentMode: b.presentMode,
		AlphaMode:   capabilities.AlphaModes[0],
	})

	b.releaseTargets()
	count := uint32(b.sampleCount)
	if count > 1 {
		tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
			Label:         "MSAA Texture",
			Size:          wgpu.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1},
			MipLevelCount: 1,
			SampleCount:   count,
			Dimension:     wgpu.TextureDimension2D,
			Format:        *b.surfaceFormat,
			Usage:         wgpu.TextureUsageRenderAttachment,
		})
		if err != nil {
			panic(err)
		}
		b.msaaTexture = tex
		if b.msaaTextureView, err = tex.CreateView(nil); err != nil {
			panic(err)
		}
	}

	// Depth texture sample count must match the color attachment.
	depth, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Depth Texture",
		Size:          wgpu.Extent3D{Width: uint32(width), Height: uint32(height), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   count,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth24Plus,
		Usage:         wgpu.TextureUsageRenderAttachment,
	})
	if err != nil {
		panic(err)
	}
	b.depthTexture = depth
	if b.depthTextureView, err = depth.CreateView(nil); err != nil {
		panic(err)
	}

	if b.pipeline == nil {
		if err := b.createPipeline(); err != nil {
			panic(fmt.Sprintf("renderer: failed to create room pipeline: %v", err))
		}
	}
}

// createPipeline builds the single room pipeline once the surface format is known.
func (b *wgpuRendererBackendImpl) createPipeline() error {
	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "room.wgsl",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: roomShaderSource(),
		},
	})
	if err != nil {
		return err
	}
	defer module.Release()

	layout, err := b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Room Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform, MinBindingSize: 80},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeReadOnlyStorage},
			},
		},
	})
	if err != nil {
		return err
	}

	b.bindGroup, err = b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "Room Bind Group",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{Binding: 0, Buffer: b.cameraBuffer, Size: wgpu.WholeSize},
			{Binding: 1, Buffer: b.lightBuffer, Size: wgpu.WholeSize},
		},
	})
	if err != nil {
		return err
	}

	b.shadowLayout, err = b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Shadow Sample Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform, MinBindingSize: 80},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeDepth,
					ViewDimension: wgpu.TextureViewDimension2D,
				},
			},
			{
				Binding:    2,
				Visibility: wgpu.ShaderStageFragment,
				Sampler:    wgpu.SamplerBindingLayout{Type: wgpu.SamplerBindingTypeComparison},
			},
		},
	})
	if err != nil {
		return err
	}
	if err := b.createShadowMap(light.ShadowMapResolution); err != nil {
		return err
	}
	if err := b.createShadowPipeline(); err != nil {
		return err
	}

	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "room",
		BindGroupLayouts: []*wgpu.BindGroupLayout{layout, b.shadowLayout},
	})
	if err != nil {
		return err
	}

	b.pipeline, err = b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "room Render Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: vertexEntryPoint,
			Buffers:    []wgpu.VertexBufferLayout{vertexLayout()},
		},
		Fragment: &wgpu.FragmentState{
			Module:     module,
			EntryPoint: fragmentEntryPoint,
			Targets: []wgpu.ColorTargetState{{
				Format:    *b.surfaceFormat,
				WriteMask: wgpu.ColorWriteMaskAll,
				Blend: &wgpu.BlendState{
					Color: wgpu.BlendComponent{
						SrcFactor: wgpu.BlendFactorSrcAlpha,
						DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
						Operation: wgpu.BlendOperationAdd,
					},
					Alpha: wgpu.BlendComponent{
						SrcFactor: wgpu.BlendFactorOne,
						DstFactor: wgpu.BlendFactorOneMinusSrcAlpha,
						Operation: wgpu.BlendOperationAdd,
					},
				},
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: uint32(b.sampleCount),
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth24Plus,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront:      wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
			StencilBack:       wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
		},
	})
	return err
}

// vertexLayout is the GPUVertex buffer layout shared by both pipelines.
func vertexLayout() wgpu.VertexBufferLayout {
	var v model.GPUVertex
	return wgpu.VertexBufferLayout{
		ArrayStride: uint64(v.Size()),
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes: []wgpu.VertexAttribute{
			{Format: wgpu.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},
			{Format: wgpu.VertexFormatFloat32x3, Offset: 12, ShaderLocation: 1},
			{Format: wgpu.VertexFormatFloat32x2, Offset: 24, ShaderLocation: 2},
			{Format: wgpu.VertexFormatFloat32x4, Offset: 32, ShaderLocation: 3},
		},
	}
}

// createShadowPipeline builds the depth-only pipeline rendering casters from the light.
func (b *wgpuRendererBackendImpl) createShadowPipeline() error {
	module, err := b.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label: "shadow.wgsl",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{
			Code: shadowShaderSource(),
		},
	})
	if err != nil {
		return err
	}
	defer module.Release()

	layout, err := b.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "Shadow Pass Bind Group Layout",
		Entries: []wgpu.BindGroupLayoutEntry{{
			Binding:    0,
			Visibility: wgpu.ShaderStageVertex,
			Buffer:     wgpu.BufferBindingLayout{Type: wgpu.BufferBindingTypeUniform, MinBindingSize: 80},
		}},
	})
	if err != nil {
		return err
	}
	b.shadowPassGroup, err = b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:   "Shadow Pass Bind Group",
		Layout:  layout,
		Entries: []wgpu.BindGroupEntry{{Binding: 0, Buffer: b.shadowBuffer, Size: wgpu.WholeSize}},
	})
	if err != nil {
		return err
	}
	pipelineLayout, err := b.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "shadow",
		BindGroupLayouts: []*wgpu.BindGroupLayout{layout},
	})
	if err != nil {
		return err
	}

	b.shadowPipeline, err = b.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  "Shadow Pipeline",
		Layout: pipelineLayout,
		Vertex: wgpu.VertexState{
			Module:     module,
			EntryPoint: shadowEntryPoint,
			Buffers:    []wgpu.VertexBufferLayout{vertexLayout()},
		},
		Fragment: nil,
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
		DepthStencil: &wgpu.DepthStencilState{
			Format:            wgpu.TextureFormatDepth32Float,
			DepthWriteEnabled: true,
			DepthCompare:      wgpu.CompareFunctionLess,
			StencilFront:      wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
			StencilBack:       wgpu.StencilFaceState{Compare: wgpu.CompareFunctionAlways},
		},
	})
	return err
}

// createShadowMap (re)creates the shadow depth texture and the bind groups sampling it.
func (b *wgpuRendererBackendImpl) createShadowMap(size int) error {
	b.releaseShadowMap()
	tex, err := b.device.CreateTexture(&wgpu.TextureDescriptor{
		Label:         "Shadow Depth Texture",
		Size:          wgpu.Extent3D{Width: uint32(size), Height: uint32(size), DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatDepth32Float,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding,
	})
	if err != nil {
		return fmt.Errorf("create shadow depth texture: %w", err)
	}
	b.shadowTexture = tex
	if b.shadowTextureView, err = tex.CreateView(nil); err != nil {
		return fmt.Errorf("create shadow depth texture view: %w", err)
	}

	group := func(label string, uniform *wgpu.Buffer) (*wgpu.BindGroup, error) {
		return b.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Label:  label,
			Layout: b.shadowLayout,
			Entries: []wgpu.BindGroupEntry{
				{Binding: 0, Buffer: uniform, Size: wgpu.WholeSize},
				{Binding: 1, TextureView: b.shadowTextureView},
				{Binding: 2, Sampler: b.shadowSampler},
			},
		})
	}
	if b.receiverGroup, err = group("Shadow Receiver Bind Group", b.shadowBuffer); err != nil {
		return err
	}
	if b.nonReceiverGroup, err = group("Shadow Disabled Bind Group", b.noShadowBuffer); err != nil {
		return err
	}
	b.shadowMapSize = size
	return nil
}

func (b *wgpuRendererBackendImpl) releaseShadowMap() {
	if b.receiverGroup != nil {
		b.receiverGroup.Release()
		b.receiverGroup = nil
	}
	if b.nonReceiverGroup != nil {
		b.nonReceiverGroup.Release()
		b.nonReceiverGroup = nil
	}
	if b.shadowTextureView != nil {
		b.shadowTextureView.Release()
		b.shadowTextureView = nil
	}
	if b.shadowTexture != nil {
		b.shadowTexture.Release()
		b.shadowTexture = nil
	}
	b.shadowMapSize = 0
}

func (b *wgpuRendererBackendImpl) Draw(frame Frame, batches []*batch) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.queue.WriteBuffer(b.cameraBuffer, 0, frame.Camera.Marshal())
	b.queue.WriteBuffer(b.lightBuffer, 0, light.MarshalLightBuffer(frame.Lights))
	b.queue.WriteBuffer(b.shadowBuffer, 0, frame.Shadow.Marshal(true))
	b.queue.WriteBuffer(b.noShadowBuffer, 0, frame.Shadow.Marshal(false))
	if frame.ShadowMapSize > 0 && frame.ShadowMapSize != b.shadowMapSize {
		if err := b.createShadowMap(frame.ShadowMapSize); err != nil {
			return err
		}
	}

	live := make(map[string]bool, len(batches))
	draws := make([]*gpuMesh, 0, len(batches))
	for _, bt := range batches {
		live[bt.key] = true
		mesh, err := b.syncMesh(bt)
		if err != nil {
			return err
		}
		draws = append(draws, mesh)
	}
	for key, mesh := range b.meshes {
		if !live[key] {
			mesh.release()
			delete(b.meshes, key)
		}
	}

	surfaceTexture, err := b.surface.GetCurrentTexture()
	if err != nil {
		return err
	}
	defer surfaceTexture.Release()
	view, err := surfaceTexture.CreateView(nil)
	if err != nil {
		return err
	}
	defer view.Release()

	encoder, err := b.device.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	defer encoder.Release()

	if frame.Shadow.Enabled != 0 {
		b.encodeShadowPass(encoder, shadowCasters(frame, batches))
	}

	color := wgpu.RenderPassColorAttachment{
		View:    view,
		LoadOp:  wgpu.LoadOpClear,
		StoreOp: wgpu.StoreOpStore,
		ClearValue: wgpu.Color{
			R: frame.ClearColor[0], G: frame.ClearColor[1], B: frame.ClearColor[2], A: frame.ClearColor[3],
		},
	}
	// With MSAA the pass renders into the multisampled target and resolves into the swapchain view.
	if b.msaaTextureView != nil {
		color.View = b.msaaTextureView
		color.ResolveTarget = view
		color.StoreOp = wgpu.StoreOpDiscard
	}
	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{color},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.depthTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpDiscard,
			DepthClearValue: 1.0,
		},
	})
	pass.SetPipeline(b.pipeline)
	pass.SetBindGroup(0, b.bindGroup, nil)
	for i, mesh := range draws {
		if batches[i].receiveShadow {
			pass.SetBindGroup(1, b.receiverGroup, nil)
		} else {
			pass.SetBindGroup(1, b.nonReceiverGroup, nil)
		}
		pass.SetVertexBuffer(0, mesh.vertex, 0, wgpu.WholeSize)
		pass.SetIndexBuffer(mesh.index, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
		pass.DrawIndexed(mesh.indexCount, 1, 0, 0, 0)
	}
	pass.End()
	pass.Release()

	commandBuffer, err := encoder.Finish(nil)
	if err != nil {
		return err
	}
	b.queue.Submit(commandBuffer)
	commandBuffer.Release()
	b.surface.Present()
	return nil
}

// encodeShadowPass clears the shadow map and renders the casters into it from the light.
func (b *wgpuRendererBackendImpl) encodeShadowPass(encoder *wgpu.CommandEncoder, casters []*batch) {
	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		Label: "Shadow Pass",
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            b.shadowTextureView,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1.0,
		},
	})
	pass.SetPipeline(b.shadowPipeline)
	pass.SetBindGroup(0, b.shadowPassGroup, nil)
	for _, bt := range casters {
		mesh, ok := b.meshes[bt.key]
		if !ok {
			continue
		}
		pass.SetVertexBuffer(0, mesh.vertex, 0, wgpu.WholeSize)
		pass.SetIndexBuffer(mesh.index, wgpu.IndexFormatUint32, 0, wgpu.WholeSize)
		pass.DrawIndexed(mesh.indexCount, 1, 0, 0, 0)
	}
	pass.End()
	pass.Release()
}

// syncMesh uploads a batch when its version differs from the cached buffers.
func (b *wgpuRendererBackendImpl) syncMesh(bt *batch) (*gpuMesh, error) {
	if mesh, ok := b.meshes[bt.key]; ok && mesh.version == bt.version {
		return mesh, nil
	}
	vertex, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: bt.key + " Vertex Buffer",
		Size:  uint64(len(bt.vertices)),
		Usage: wgpu.BufferUsageVertex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	b.queue.WriteBuffer(vertex, 0, bt.vertices)

	index, err := b.device.CreateBuffer(&wgpu.BufferDescriptor{
		Label: bt.key + " Index Buffer",
		Size:  uint64(len(bt.indices)),
		Usage: wgpu.BufferUsageIndex | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		vertex.Release()
		return nil, err
	}
	b.queue.WriteBuffer(index, 0, bt.indices)

	if old, ok := b.meshes[bt.key]; ok {
		old.release()
	}
	mesh := &gpuMesh{version: bt.version, vertex: vertex, index: index, indexCount: uint32(bt.indexCount)}
	b.meshes[bt.key] = mesh
	return mesh, nil
}

func (b *wgpuRendererBackendImpl) releaseTargets() {
	if b.msaaTextureView != nil {
		b.msaaTextureView.Release()
		b.msaaTextureView = nil
	}
	if b.msaaTexture != nil {
		b.msaaTexture.Release()
		b.msaaTexture = nil
	}
	if b.depthTextureView != nil {
		b.depthTextureView.Release()
		b.depthTextureView = nil
	}
	if b.depthTexture != nil {
		b.depthTexture.Release()
		b.depthTexture = nil
	}
}

func (b *wgpuRendererBackendImpl) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for key, mesh := range b.meshes {
		mesh.release()
		delete(b.meshes, key)
	}
	b.releaseTargets()
	b.releaseShadowMap()
	if b.bindGroup != nil {
		b.bindGroup.Release()
	}
	if b.pipeline != nil {
		b.pipeline.Release()
	}
	if b.shadowPassGroup != nil {
		b.shadowPassGroup.Release()
	}
	if b.shadowPipeline != nil {
		b.shadowPipeline.Release()
	}
	if b.shadowLayout != nil {
		b.shadowLayout.Release()
	}
	b.shadowSampler.Release()
	b.shadowBuffer.Release()
	b.noShadowBuffer.Release()
	b.cameraBuffer.Release()
	b.lightBuffer.Release()
	b.device.Release()
	b.adapter.Release()
	b.surface.Release()
	b.instance.Release()
}
