package metrics

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/dustin/go-humanize"
)

// SysHealth represents real-time system metrics.
type SysHealth struct {
	Alloc        string `json:"alloc"`
	TotalAlloc   string `json:"total_alloc"`
	Sys          string `json:"sys"`
	NumGC        uint32 `json:"num_gc"`
	Goroutines   int    `json:"goroutines"`
	DataDiskSize string `json:"data_disk_size"`
}

// GetSysHealth collects real-time health data. dataPath may be a file or a
// directory; a missing path reports zero bytes.
func GetSysHealth(dataPath string) SysHealth {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return SysHealth{
		Alloc:        humanize.Bytes(m.Alloc),
		TotalAlloc:   humanize.Bytes(m.TotalAlloc),
		Sys:          humanize.Bytes(m.Sys),
		NumGC:        m.NumGC,
		Goroutines:   runtime.NumGoroutine(),
		DataDiskSize: humanize.Bytes(uint64(diskUsage(dataPath))),
	}
}

func diskUsage(path string) int64 {
	var size int64
	_ = filepath.Walk(path, func(_ string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() {
			size += info.Size()
		}
		return nil
	})
	return size
}
