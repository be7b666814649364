package dto

import "gorm.io/datatypes"

// externalIDs never stores SQL NULL so the column always scans.
func externalIDs(in map[string]string) datatypes.JSONType[map[string]string] {
	if in == nil {
		in = map[string]string{}
	}
	return datatypes.NewJSONType(in)
}
