//go:build opencl

package engine

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/jgillich/go-opencl/cl"

	"fieldlab/internal/core"
)

// Solver executes stencil passes on an OpenCL device. Both channel buffers of
// both ping-pong fields stay device-resident between steps; the host field is
// only re-uploaded after an out-of-band write (injection or reset) and the
// current field is read back once per Step call for presentation.
type Solver struct {
	context    *cl.Context
	queue      *cl.CommandQueue
	program    *cl.Program
	stepKernel *cl.Kernel
	borderRows *cl.Kernel
	borderCols *cl.Kernel
	a          [2]*cl.MemObject
	b          [2]*cl.MemObject
	width      int
	height     int
	argBase    int
	deviceName string
	coldStart  bool
	dirty      bool
}

const solverKernelSource = `__kernel void gray_scott_step(
    const int width,
    const int height,
    const float da,
    const float db,
    const float f,
    const float k,
    const float dt,
    __global const float* src_a,
    __global const float* src_b,
    __global float* dst_a,
    __global float* dst_b)
{
    int idx = get_global_id(0);
    int size = width * height;
    if (idx >= size) {
        return;
    }
    int x = idx % width;
    int y = idx / width;
    if (x <= 0 || x >= width - 1 || y <= 0 || y >= height - 1) {
        return;
    }
    float a = src_a[idx];
    float b = src_b[idx];
    float lap_a = src_a[idx - 1] + src_a[idx + 1] + src_a[idx - width] + src_a[idx + width] - 4.0f * a;
    float lap_b = src_b[idx - 1] + src_b[idx + 1] + src_b[idx - width] + src_b[idx + width] - 4.0f * b;
    float abb = a * b * b;
    float na = a + (da * lap_a - abb + f * (1.0f - a)) * dt;
    float nb = b + (db * lap_b + abb - (f + k) * b) * dt;
    dst_a[idx] = clamp(na, 0.0f, 1.0f);
    dst_b[idx] = clamp(nb, 0.0f, 1.0f);
}

__kernel void wave_step(
    const int width,
    const int height,
    const float damping,
    const float strength,
    __global const float* src_a,
    __global const float* src_b,
    __global float* dst_a,
    __global float* dst_b)
{
    int idx = get_global_id(0);
    int size = width * height;
    if (idx >= size) {
        return;
    }
    int x = idx % width;
    int y = idx / width;
    if (x <= 0 || x >= width - 1 || y <= 0 || y >= height - 1) {
        return;
    }
    float a = src_a[idx];
    float laplacian = src_a[idx - 1] + src_a[idx + 1] + src_a[idx - width] + src_a[idx + width] - 4.0f * a;
    dst_a[idx] = damping * (2.0f * a - src_b[idx] + laplacian * strength);
    dst_b[idx] = a;
}

__kernel void copy_border_rows(
    const int width,
    const int height,
    __global const float* src_a,
    __global const float* src_b,
    __global float* dst_a,
    __global float* dst_b)
{
    int x = get_global_id(0);
    if (x >= width) {
        return;
    }
    int bottom = (height - 1) * width + x;
    dst_a[x] = src_a[x];
    dst_b[x] = src_b[x];
    dst_a[bottom] = src_a[bottom];
    dst_b[bottom] = src_b[bottom];
}

__kernel void copy_border_cols(
    const int width,
    const int height,
    __global const float* src_a,
    __global const float* src_b,
    __global float* dst_a,
    __global float* dst_b)
{
    int y = get_global_id(0) + 1;
    if (y >= height - 1) {
        return;
    }
    int left = y * width;
    int right = left + width - 1;
    dst_a[left] = src_a[left];
    dst_b[left] = src_b[left];
    dst_a[right] = src_a[right];
    dst_b[right] = src_b[right];
}`

// NewGrayScottSolver compiles the reaction-diffusion kernel for a W×H grid.
func NewGrayScottSolver(width, height int, da, db, f, k, dt float32) (*Solver, error) {
	return newSolver(width, height, "gray_scott_step", 7, []interface{}{da, db, f, k, dt})
}

// NewWaveSolver compiles the wave propagation kernel for a W×H grid.
func NewWaveSolver(width, height int, damping, strength float32) (*Solver, error) {
	return newSolver(width, height, "wave_step", 4, []interface{}{damping, strength})
}

func newSolver(width, height int, kernelName string, argBase int, scalars []interface{}) (*Solver, error) {
	device, err := pickDevice()
	if err != nil {
		return nil, err
	}

	s := &Solver{width: width, height: height, argBase: argBase, coldStart: true, deviceName: device.Name()}

	s.context, err = cl.CreateContext([]*cl.Device{device})
	if err != nil {
		return nil, fmt.Errorf("creating OpenCL context: %w", err)
	}
	s.queue, err = s.context.CreateCommandQueue(device, 0)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("creating OpenCL command queue: %w", err)
	}
	s.program, err = s.context.CreateProgramWithSource([]string{solverKernelSource})
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("creating OpenCL program: %w", err)
	}
	if err := s.program.BuildProgram([]*cl.Device{device}, ""); err != nil {
		s.Close()
		if buildErr, ok := err.(cl.BuildError); ok {
			return nil, fmt.Errorf("building OpenCL program: %s", string(buildErr))
		}
		return nil, fmt.Errorf("building OpenCL program: %w", err)
	}
	s.stepKernel, err = s.program.CreateKernel(kernelName)
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("creating %s kernel: %w", kernelName, err)
	}
	s.borderRows, err = s.program.CreateKernel("copy_border_rows")
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("creating border row kernel: %w", err)
	}
	s.borderCols, err = s.program.CreateKernel("copy_border_cols")
	if err != nil {
		s.Close()
		return nil, fmt.Errorf("creating border column kernel: %w", err)
	}

	byteSize := width * height * int(unsafe.Sizeof(float32(0)))
	for i := 0; i < 2; i++ {
		s.a[i], err = s.context.CreateEmptyBuffer(cl.MemReadWrite, byteSize)
		if err == nil {
			s.b[i], err = s.context.CreateEmptyBuffer(cl.MemReadWrite, byteSize)
		}
		if err != nil {
			s.Close()
			return nil, fmt.Errorf("allocating channel buffers: %w", err)
		}
	}

	args := []interface{}{int32(width), int32(height)}
	args = append(args, scalars...)
	args = append(args, s.a[0], s.b[0], s.a[1], s.b[1])
	if err := s.stepKernel.SetArgs(args...); err != nil {
		s.Close()
		return nil, fmt.Errorf("setting %s kernel arguments: %w", kernelName, err)
	}
	borderArgs := []interface{}{int32(width), int32(height), s.a[0], s.b[0], s.a[1], s.b[1]}
	if err := s.borderRows.SetArgs(borderArgs...); err != nil {
		s.Close()
		return nil, fmt.Errorf("setting border row kernel arguments: %w", err)
	}
	if err := s.borderCols.SetArgs(borderArgs...); err != nil {
		s.Close()
		return nil, fmt.Errorf("setting border column kernel arguments: %w", err)
	}

	return s, nil
}

func pickDevice() (*cl.Device, error) {
	platforms, err := cl.GetPlatforms()
	if err != nil {
		return nil, fmt.Errorf("querying OpenCL platforms: %w", err)
	}
	if len(platforms) == 0 {
		return nil, errors.New("no OpenCL platforms available; ensure a vendor driver is installed")
	}
	for _, deviceType := range []cl.DeviceType{cl.DeviceTypeGPU, cl.DeviceTypeCPU} {
		for _, p := range platforms {
			devices, derr := p.GetDevices(deviceType)
			if derr != nil && derr != cl.ErrDeviceNotFound {
				continue
			}
			if len(devices) > 0 {
				return devices[0], nil
			}
		}
	}
	return nil, errors.New("no suitable OpenCL devices found")
}

// MarkDirty records that the host-side current field was written out-of-band
// (injection or reset) and must be re-uploaded before the next pass.
func (s *Solver) MarkDirty() { s.dirty = true }

// Reset forces a full re-upload of both fields before the next pass.
func (s *Solver) Reset() {
	s.coldStart = true
	s.dirty = false
}

// DeviceName reports the OpenCL device the solver runs on.
func (s *Solver) DeviceName() string { return s.deviceName }

// Step runs the given number of stencil passes on the device, advancing the
// pair's tick per pass, and reads the resulting current field back to host.
func (s *Solver) Step(pair *core.FieldPair, steps int) error {
	if steps <= 0 {
		return nil
	}
	cur := pair.Current()
	size := s.width * s.height
	if len(cur.A) != size || len(cur.B) != size {
		return fmt.Errorf("field %dx%d does not match solver %dx%d", cur.W, cur.H, s.width, s.height)
	}

	read := pair.CurrentIndex()
	if s.coldStart || s.dirty {
		if err := s.upload(read, cur); err != nil {
			return err
		}
		if s.coldStart {
			if err := s.upload(1-read, pair.Next()); err != nil {
				return err
			}
		}
	}

	global := []int{size}
	for i := 0; i < steps; i++ {
		read = pair.CurrentIndex()
		write := 1 - read
		if err := s.bind(read, write); err != nil {
			return fmt.Errorf("binding buffers: %w", err)
		}
		if _, err := s.queue.EnqueueNDRangeKernel(s.stepKernel, nil, global, nil, nil); err != nil {
			return fmt.Errorf("enqueueing step kernel: %w", err)
		}
		if _, err := s.queue.EnqueueNDRangeKernel(s.borderRows, nil, []int{s.width}, nil, nil); err != nil {
			return fmt.Errorf("copying border rows: %w", err)
		}
		if s.height > 2 {
			if _, err := s.queue.EnqueueNDRangeKernel(s.borderCols, nil, []int{s.height - 2}, nil, nil); err != nil {
				return fmt.Errorf("copying border columns: %w", err)
			}
		}
		pair.Advance()
	}

	cur = pair.Current()
	idx := pair.CurrentIndex()
	if _, err := s.queue.EnqueueReadBufferFloat32(s.a[idx], true, 0, cur.A, nil); err != nil {
		return fmt.Errorf("reading back channel A: %w", err)
	}
	if _, err := s.queue.EnqueueReadBufferFloat32(s.b[idx], true, 0, cur.B, nil); err != nil {
		return fmt.Errorf("reading back channel B: %w", err)
	}
	s.coldStart = false
	s.dirty = false
	return nil
}

func (s *Solver) upload(idx int, f *core.Field) error {
	if _, err := s.queue.EnqueueWriteBufferFloat32(s.a[idx], false, 0, f.A, nil); err != nil {
		return fmt.Errorf("writing channel A: %w", err)
	}
	if _, err := s.queue.EnqueueWriteBufferFloat32(s.b[idx], false, 0, f.B, nil); err != nil {
		return fmt.Errorf("writing channel B: %w", err)
	}
	return nil
}

func (s *Solver) bind(read, write int) error {
	bufs := []*cl.MemObject{s.a[read], s.b[read], s.a[write], s.b[write]}
	for j, buf := range bufs {
		if err := s.stepKernel.SetArgBuffer(s.argBase+j, buf); err != nil {
			return err
		}
		if err := s.borderRows.SetArgBuffer(2+j, buf); err != nil {
			return err
		}
		if err := s.borderCols.SetArgBuffer(2+j, buf); err != nil {
			return err
		}
	}
	return nil
}

// Close releases every OpenCL resource held by the solver.
func (s *Solver) Close() {
	for i := 0; i < 2; i++ {
		if s.a[i] != nil {
			s.a[i].Release()
			s.a[i] = nil
		}
		if s.b[i] != nil {
			s.b[i].Release()
			s.b[i] = nil
		}
	}
	if s.stepKernel != nil {
		s.stepKernel.Release()
		s.stepKernel = nil
	}
	if s.borderRows != nil {
		s.borderRows.Release()
		s.borderRows = nil
	}
	if s.borderCols != nil {
		s.borderCols.Release()
		s.borderCols = nil
	}
	if s.program != nil {
		s.program.Release()
		s.program = nil
	}
	if s.queue != nil {
		s.queue.Release()
		s.queue = nil
	}
	if s.context != nil {
		s.context.Release()
		s.context = nil
	}
}
