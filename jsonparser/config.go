package jsonparser

import (
	"github.com/fwojciec/pbidoc"
)

// ParseVisualConfig performs the inner parse of a visual container's
// "config" field, which holds a JSON document encoded as a JSON string.
//
// A missing or null config yields an empty object without error. A config
// that is already an object is returned as is. Anything else that does not
// decode to a JSON object yields an empty object and an EINVALID error.
func ParseVisualConfig(config Node) (Node, error) {
	switch {
	case !config.Exists(), config.IsNull():
		return EmptyObject(), nil
	case config.IsObject():
		return config, nil
	case !config.IsString():
		return EmptyObject(), pbidoc.Errorf(pbidoc.EINVALID, "visual config is not a string")
	}

	inner, err := Parse([]byte(config.String()))
	if err != nil {
		return EmptyObject(), pbidoc.Errorf(pbidoc.EINVALID, "visual config is not valid JSON")
	}
	if !inner.IsObject() {
		return EmptyObject(), pbidoc.Errorf(pbidoc.EINVALID, "visual config is not a JSON object")
	}
	return inner, nil
}
