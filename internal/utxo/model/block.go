// Package model defines the rows mirrored into the relational store and the upstream payloads they are built from.
package model

import "time"

// BlockHeight is a marker row recording a chain tip observed by the sync pipeline.
type BlockHeight struct {
	ID     int64
	Height uint64
}

// BlockInfo is the header-level summary of one block. At most one row exists per height.
type BlockInfo struct {
	ID         int64
	Height     uint64
	Hash       string
	TxCount    uint32
	Difficulty float64
	BlockTime  int64
	Timestamp  time.Time
	Size       uint32
	Weight     uint32
}
