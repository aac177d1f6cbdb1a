package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/javi11/rarblock"
)

type blockInfo struct {
	Offset   int64  `json:"offset"`
	Type     string `json:"type"`
	Flags    string `json:"flags"`
	HeadSize uint16 `json:"head_size"`
	DataSize uint64 `json:"data_size"`
	CRCValid bool   `json:"crc_valid"`
	Name     string `json:"name,omitempty"`
	Method   string `json:"method,omitempty"`
	Unpacked uint64 `json:"unpacked,omitempty"`
}

func main() {
	if len(os.Args) < 2 {
		log.Fatalf("usage: %s <archive>.rar", os.Args[0])
	}
	path := os.Args[1]

	src, f, err := rarblock.OpenSource(context.Background(), nil, path, 0)
	if err != nil {
		log.Fatalf("open: %v", err)
	}
	defer func() { _ = f.Close() }()

	var blocks []blockInfo
	sc := rarblock.NewScanner(src, rarblock.WithSkipUnsupported())
	for sc.Next() {
		b := sc.Block()
		p := b.Preamble()
		info := blockInfo{
			Offset:   sc.Offset(),
			Type:     b.Type().String(),
			Flags:    fmt.Sprintf("0x%04x", uint16(p.Flags)),
			HeadSize: p.HeadSize,
			DataSize: b.DataSize(),
			CRCValid: b.CRCValid(),
		}
		if fh, ok := b.(*rarblock.FileHeader); ok {
			info.Name = fh.DecodedName()
			info.Method = fh.Method.String()
			info.Unpacked = fh.UnpackedSize
		}
		blocks = append(blocks, info)
	}
	if err := sc.Err(); err != nil {
		log.Printf("scan stopped: %v", err)
	}
	out, _ := json.MarshalIndent(blocks, "", "  ")
	fmt.Println(string(out))
}
