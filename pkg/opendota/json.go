package opendota

import jsoniter "github.com/json-iterator/go"

// jsonAPI decodes numbers as json.Number so 64-bit match and account ids are not rounded.
var jsonAPI = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()
