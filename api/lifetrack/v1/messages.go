package lifetrackv1

import (
	"fmt"
	"strconv"
	"strings"

	"google.golang.org/protobuf/types/known/structpb"
)

// Track kinds.
const (
	KindType = "type"
	KindName = "name"
)

// SpawnRequest asks the daemon's heap for a new object.
type SpawnRequest struct {
	Class string
	Name  string
}

func (r SpawnRequest) Proto() *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"class": structpb.NewStringValue(r.Class),
		"name":  structpb.NewStringValue(r.Name),
	}}
}

func ParseSpawnRequest(s *structpb.Struct) (SpawnRequest, error) {
	class, err := stringField(s, "class")
	if err != nil {
		return SpawnRequest{}, err
	}
	name, err := stringField(s, "name")
	if err != nil {
		return SpawnRequest{}, err
	}
	return SpawnRequest{Class: class, Name: name}, nil
}

// SpawnResponse identifies the spawned object.
type SpawnResponse struct {
	Handle uint64
	Slot   int32
}

func (r SpawnResponse) Proto() *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"handle": structpb.NewStringValue(FormatHandle(r.Handle)),
		"slot":   structpb.NewNumberValue(float64(r.Slot)),
	}}
}

func ParseSpawnResponse(s *structpb.Struct) (SpawnResponse, error) {
	raw, err := stringField(s, "handle")
	if err != nil {
		return SpawnResponse{}, err
	}
	h, err := ParseHandle(raw)
	if err != nil {
		return SpawnResponse{}, err
	}
	slot, err := numberField(s, "slot")
	if err != nil {
		return SpawnResponse{}, err
	}
	return SpawnResponse{Handle: h, Slot: int32(slot)}, nil
}

// TrackRequest names a type or a name substring to (un)track.
type TrackRequest struct {
	Kind    string
	Pattern string
}

func (r TrackRequest) Proto() *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"kind":    structpb.NewStringValue(r.Kind),
		"pattern": structpb.NewStringValue(r.Pattern),
	}}
}

func ParseTrackRequest(s *structpb.Struct) (TrackRequest, error) {
	kind, err := stringField(s, "kind")
	if err != nil {
		return TrackRequest{}, err
	}
	if kind != KindType && kind != KindName {
		return TrackRequest{}, fmt.Errorf("kind must be %q or %q, got %q", KindType, KindName, kind)
	}
	pattern, err := stringField(s, "pattern")
	if err != nil {
		return TrackRequest{}, err
	}
	return TrackRequest{Kind: kind, Pattern: pattern}, nil
}

// Record mirrors a tracked object record.
type Record struct {
	Handle        uint64
	Name          string
	Flags         uint32
	Slot          int32
	Valid         bool
	TrackedAtUnix int64
}

func (r Record) Proto() *structpb.Value {
	return structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
		"handle":     structpb.NewStringValue(FormatHandle(r.Handle)),
		"name":       structpb.NewStringValue(r.Name),
		"flags":      structpb.NewNumberValue(float64(r.Flags)),
		"slot":       structpb.NewNumberValue(float64(r.Slot)),
		"valid":      structpb.NewBoolValue(r.Valid),
		"tracked_at": structpb.NewNumberValue(float64(r.TrackedAtUnix)),
	}})
}

func ParseRecord(v *structpb.Value) (Record, error) {
	s := v.GetStructValue()
	if s == nil {
		return Record{}, fmt.Errorf("record must be a struct")
	}
	raw, err := stringField(s, "handle")
	if err != nil {
		return Record{}, err
	}
	h, err := ParseHandle(raw)
	if err != nil {
		return Record{}, err
	}
	name, err := stringField(s, "name")
	if err != nil {
		return Record{}, err
	}
	flags, err := numberField(s, "flags")
	if err != nil {
		return Record{}, err
	}
	slot, err := numberField(s, "slot")
	if err != nil {
		return Record{}, err
	}
	tracked, err := numberField(s, "tracked_at")
	if err != nil {
		return Record{}, err
	}
	return Record{
		Handle:        h,
		Name:          name,
		Flags:         uint32(flags),
		Slot:          int32(slot),
		Valid:         s.GetFields()["valid"].GetBoolValue(),
		TrackedAtUnix: int64(tracked),
	}, nil
}

// RecordList packs records into a ListValue.
func RecordList(recs []Record) *structpb.ListValue {
	out := &structpb.ListValue{Values: make([]*structpb.Value, 0, len(recs))}
	for _, r := range recs {
		out.Values = append(out.Values, r.Proto())
	}
	return out
}

func ParseRecordList(l *structpb.ListValue) ([]Record, error) {
	out := make([]Record, 0, len(l.GetValues()))
	for i, v := range l.GetValues() {
		r, err := ParseRecord(v)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		out = append(out, r)
	}
	return out, nil
}

// FormatHandle renders a handle as hex. Handles travel as strings inside
// structs because struct numbers are float64.
func FormatHandle(h uint64) string {
	return "0x" + strconv.FormatUint(h, 16)
}

// ParseHandle accepts hex with a 0x prefix or plain decimal.
func ParseHandle(s string) (uint64, error) {
	s = strings.TrimSpace(s)
	if hex, ok := strings.CutPrefix(strings.ToLower(s), "0x"); ok {
		return strconv.ParseUint(hex, 16, 64)
	}
	return strconv.ParseUint(s, 10, 64)
}

func stringField(s *structpb.Struct, key string) (string, error) {
	v, ok := s.GetFields()[key]
	if !ok {
		return "", fmt.Errorf("missing field %q", key)
	}
	sv, ok := v.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", fmt.Errorf("field %q must be a string", key)
	}
	return sv.StringValue, nil
}

func numberField(s *structpb.Struct, key string) (float64, error) {
	v, ok := s.GetFields()[key]
	if !ok {
		return 0, fmt.Errorf("missing field %q", key)
	}
	nv, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("field %q must be a number", key)
	}
	return nv.NumberValue, nil
}
