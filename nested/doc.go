// Package nested embeds values produced by external serializers in an
// arena, framed by a u64 byte length:
//
//	c := nested.Of[Config](nested.Zstd(nested.YAML))
//	err := codec.WriteLE(a, c, cfg)
package nested
