package authrpc

import (
	"google.golang.org/protobuf/types/known/structpb"
)

// String возвращает строковое поле key или пустую строку.
func String(s *structpb.Struct, key string) string {
	if s == nil {
		return ""
	}
	return s.GetFields()[key].GetStringValue()
}

// Bool возвращает логическое поле key или false.
func Bool(s *structpb.Struct, key string) bool {
	if s == nil {
		return false
	}
	return s.GetFields()[key].GetBoolValue()
}

// Message собирает Struct из пар ключ-значение строкового и логического типа.
func Message(fields map[string]any) *structpb.Struct {
	out := &structpb.Struct{Fields: make(map[string]*structpb.Value, len(fields))}
	for k, v := range fields {
		switch val := v.(type) {
		case string:
			out.Fields[k] = structpb.NewStringValue(val)
		case bool:
			out.Fields[k] = structpb.NewBoolValue(val)
		}
	}
	return out
}
