package stats

import (
	"errors"
	"fmt"
	"os"
	"runtime"

	"github.com/shirou/gopsutil/v4/process"

	"cicd-demo/statusboard/internal/models/entities"
)

// MemorySampler returns current heap bytes in use and heap bytes obtained
// from the OS. used must never exceed total.
type MemorySampler func() (used, total uint64)

// RuntimeMemory samples the Go heap.
func RuntimeMemory() (used, total uint64) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.HeapAlloc, m.HeapSys
}

// ProcessSampler reports CPU time consumed by the process.
type ProcessSampler interface {
	CPUTimes() (entities.CPUUsage, error)
}

type gopsutilSampler struct {
	proc *process.Process
	err  error
}

// NewProcessSampler samples the current process through gopsutil.
func NewProcessSampler() ProcessSampler {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return &gopsutilSampler{err: fmt.Errorf("open process %d: %w", os.Getpid(), err)}
	}
	return &gopsutilSampler{proc: p}
}

func (s *gopsutilSampler) CPUTimes() (entities.CPUUsage, error) {
	if s.proc == nil {
		if s.err == nil {
			return entities.CPUUsage{}, errors.New("process sampler not initialized")
		}
		return entities.CPUUsage{}, s.err
	}
	t, err := s.proc.Times()
	if err != nil {
		return entities.CPUUsage{}, fmt.Errorf("read cpu times: %w", err)
	}
	return entities.CPUUsage{
		User:   int64(t.User * 1e6),
		System: int64(t.System * 1e6),
	}, nil
}
