package storage

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/foodsearch/core"
)

// Hand-written MUS serializers. Field order is part of the stored format:
// append new fields at the end only.

// FoodRecordMUS serializes core.FoodRecord.
var FoodRecordMUS = foodRecordMUS{}

// CheckpointMUS serializes core.Checkpoint.
var CheckpointMUS = checkpointMUS{}

type foodRecordMUS struct{}

func (foodRecordMUS) Marshal(v core.FoodRecord, bs []byte) (n int) {
	n = ord.String.Marshal(v.ID, bs)
	n += ord.String.Marshal(v.Name, bs[n:])
	n += stringsMUS{}.Marshal(v.Aliases, bs[n:])
	n += ord.String.Marshal(v.Category, bs[n:])
	for _, f := range v.Per100.Fields() {
		n += optionalFloatMUS{}.Marshal(f, bs[n:])
	}
	n += ord.String.Marshal(v.Source, bs[n:])
	n += varint.Int.Marshal(v.Rank, bs[n:])
	return n
}

func (foodRecordMUS) Unmarshal(bs []byte) (v core.FoodRecord, n int, err error) {
	var n1 int
	if v.ID, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	v.Name, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Aliases, n1, err = (stringsMUS{}).Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Category, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	for _, slot := range []**float64{&v.Per100.Kcal, &v.Per100.Protein, &v.Per100.Carbs, &v.Per100.Fat, &v.Per100.Fiber} {
		*slot, n1, err = (optionalFloatMUS{}).Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	v.Source, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Rank, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	return
}

func (foodRecordMUS) Size(v core.FoodRecord) (size int) {
	size = ord.String.Size(v.ID)
	size += ord.String.Size(v.Name)
	size += stringsMUS{}.Size(v.Aliases)
	size += ord.String.Size(v.Category)
	for _, f := range v.Per100.Fields() {
		size += optionalFloatMUS{}.Size(f)
	}
	size += ord.String.Size(v.Source)
	return size + varint.Int.Size(v.Rank)
}

type checkpointMUS struct{}

func (checkpointMUS) Marshal(v core.Checkpoint, bs []byte) (n int) {
	n = ord.String.Marshal(v.Name, bs)
	n += varint.Int.Marshal(v.Items, bs[n:])
	n += ord.String.Marshal(v.Digest, bs[n:])
	n += varint.Int64.Marshal(v.UpdatedAt.UnixMicro(), bs[n:])
	return n
}

func (checkpointMUS) Unmarshal(bs []byte) (v core.Checkpoint, n int, err error) {
	var n1 int
	if v.Name, n, err = ord.String.Unmarshal(bs); err != nil {
		return
	}
	v.Items, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.Digest, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var micros int64
	micros, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	v.UpdatedAt = time.UnixMicro(micros).UTC()
	return
}

func (checkpointMUS) Size(v core.Checkpoint) int {
	return ord.String.Size(v.Name) +
		varint.Int.Size(v.Items) +
		ord.String.Size(v.Digest) +
		varint.Int64.Size(v.UpdatedAt.UnixMicro())
}

// stringsMUS encodes a length-prefixed list of strings.
type stringsMUS struct{}

func (stringsMUS) Marshal(v []string, bs []byte) (n int) {
	n = varint.Int.Marshal(len(v), bs)
	for _, s := range v {
		n += ord.String.Marshal(s, bs[n:])
	}
	return n
}

func (stringsMUS) Unmarshal(bs []byte) (v []string, n int, err error) {
	var length, n1 int
	if length, n, err = varint.Int.Unmarshal(bs); err != nil {
		return
	}
	if length < 0 || length > len(bs)-n {
		return nil, n, ErrTruncatedData
	}
	v = make([]string, length)
	for i := range v {
		v[i], n1, err = ord.String.Unmarshal(bs[n:])
		n += n1
		if err != nil {
			return
		}
	}
	return
}

func (stringsMUS) Size(v []string) (size int) {
	size = varint.Int.Size(len(v))
	for _, s := range v {
		size += ord.String.Size(s)
	}
	return size
}

// optionalFloatMUS encodes a presence flag followed by the value, so an
// unknown nutrient never decodes as zero.
type optionalFloatMUS struct{}

func (optionalFloatMUS) Marshal(v *float64, bs []byte) (n int) {
	n = ord.Bool.Marshal(v != nil, bs)
	if v != nil {
		n += raw.Float64.Marshal(*v, bs[n:])
	}
	return n
}

func (optionalFloatMUS) Unmarshal(bs []byte) (v *float64, n int, err error) {
	var present bool
	if present, n, err = ord.Bool.Unmarshal(bs); err != nil || !present {
		return
	}
	f, n1, err := raw.Float64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return nil, n, err
	}
	return &f, n, nil
}

func (optionalFloatMUS) Size(v *float64) int {
	if v == nil {
		return ord.Bool.Size(false)
	}
	return ord.Bool.Size(true) + raw.Float64.Size(*v)
}
