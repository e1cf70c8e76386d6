package anvil

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

const (
	sectorSize      = 4096
	headerSectors   = 2 // location table + timestamp table
	compressionZlib = 2
	regionChunks    = 32
)

// regionOf returns the region holding chunk pos.
func regionOf(pos chunkPos) chunkPos {
	return chunkPos{X: pos.X >> 5, Z: pos.Z >> 5}
}

// regionPath returns the file name of region (rx, rz) inside dir.
func regionPath(dir string, rx, rz int) string {
	return filepath.Join(dir, fmt.Sprintf("r.%d.%d.mca", rx, rz))
}

// saveRegion writes chunks, keyed by chunk position and holding uncompressed
// NBT, to the .mca file of region (rx, rz). The file is replaced atomically.
func saveRegion(dir string, rx, rz int, chunks map[chunkPos][]byte) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create region dir: %w", err)
	}

	type entry struct {
		index      int
		compressed []byte
	}
	entries := make([]entry, 0, len(chunks))

	for pos, raw := range chunks {
		var cbuf bytes.Buffer
		zw := zlib.NewWriter(&cbuf)
		if _, err := zw.Write(raw); err != nil {
			return fmt.Errorf("compress chunk (%d,%d): %w", pos.X, pos.Z, err)
		}
		if err := zw.Close(); err != nil {
			return fmt.Errorf("close zlib writer: %w", err)
		}
		idx := (pos.X & (regionChunks - 1)) + (pos.Z&(regionChunks-1))*regionChunks
		entries = append(entries, entry{index: idx, compressed: cbuf.Bytes()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].index < entries[j].index })

	locations := make([]byte, sectorSize)
	timestamps := make([]byte, sectorSize)
	now := uint32(time.Now().Unix())

	var data bytes.Buffer
	sector := uint32(headerSectors)

	for _, e := range entries {
		// length (4) + compression (1) + payload, padded to whole sectors.
		payloadLen := uint32(len(e.compressed)) + 1
		total := 4 + payloadLen
		sectors := (total + sectorSize - 1) / sectorSize
		if sectors > 0xFF {
			return fmt.Errorf("chunk %d of region (%d,%d) needs %d sectors", e.index, rx, rz, sectors)
		}

		off := e.index * 4
		binary.BigEndian.PutUint32(locations[off:off+4], sector<<8|sectors)
		binary.BigEndian.PutUint32(timestamps[off:off+4], now)

		var header [5]byte
		binary.BigEndian.PutUint32(header[0:4], payloadLen)
		header[4] = compressionZlib
		data.Write(header[:])
		data.Write(e.compressed)
		if pad := int(sectors*sectorSize - total); pad > 0 {
			data.Write(make([]byte, pad))
		}

		sector += sectors
	}

	path := regionPath(dir, rx, rz)
	tmp := path + ".tmp"

	f, err := os.Create(tmp)
	if err != nil {
		return fmt.Errorf("create temp region file: %w", err)
	}
	defer func() {
		f.Close()
		os.Remove(tmp)
	}()

	for _, part := range [][]byte{locations, timestamps, data.Bytes()} {
		if _, err := f.Write(part); err != nil {
			return fmt.Errorf("write region file: %w", err)
		}
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close region file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename region file: %w", err)
	}
	return nil
}
