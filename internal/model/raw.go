package model

import "strings"

// RawDocument 文档集合中的原始文档（两个集合共用的松散结构）
// 字段名不统一（title/caption、fullname/companyName、Image0..9/Displayurl等），
// 由normalize包映射为统一Event
type RawDocument map[string]interface{}

// Str 取字符串字段（去首尾空白；非字符串或缺失返回空串）
func (d RawDocument) Str(key string) string {
	v, ok := d[key]
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// FirstStr 按候选顺序取第一个非空字符串字段
func (d RawDocument) FirstStr(keys ...string) string {
	for _, k := range keys {
		if s := d.Str(k); s != "" {
			return s
		}
	}
	return ""
}

// Int 取整数字段（兼容JSON反序列化产生的float64；缺失或类型不符返回0）
func (d RawDocument) Int(key string) int {
	switch v := d[key].(type) {
	case float64:
		return int(v)
	case int:
		return v
	case int64:
		return int(v)
	}
	return 0
}

// List 取数组字段（非数组或缺失返回nil）
func (d RawDocument) List(key string) []interface{} {
	v, ok := d[key].([]interface{})
	if !ok {
		return nil
	}
	return v
}

// StrList 取字符串数组字段（逐元素转换，跳过非字符串与空串）
func (d RawDocument) StrList(key string) []string {
	var out []string
	for _, v := range d.List(key) {
		if s, ok := v.(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
