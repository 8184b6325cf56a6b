package validator

import (
	"encoding/base64"
	"math"
	"regexp"
)

// EntropyThreshold is the bits-per-char cutoff above which a value is treated
// as likely random. MinSecretLength is the floor below which a value cannot
// be a meaningful secret.
const (
	EntropyThreshold = 4.5
	MinSecretLength  = 8
)

// Entropy computes the Shannon entropy (base 2) of s over its byte-frequency
// distribution. An empty string and a single repeated byte both score 0.
func Entropy(s string) float64 {
	if s == "" {
		return 0
	}
	var counts [256]int
	for i := 0; i < len(s); i++ {
		counts[s[i]]++
	}
	n := float64(len(s))
	var e float64
	for _, c := range counts {
		if c == 0 {
			continue
		}
		p := float64(c) / n
		e -= p * math.Log2(p)
	}
	return e
}

var (
	reBase64 = regexp.MustCompile(`^[A-Za-z0-9+/]+=*$`)
	reUUID   = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)
)

// isLikelyBase64 reports whether v is alphabet-conformant base64 of useful
// length that decodes under the padded standard encoding. Unpadded input is
// rejected: a length that is not a multiple of four is not a well-formed
// base64 blob.
func isLikelyBase64(v string) bool {
	if len(v) < 16 || len(v)%4 != 0 || !reBase64.MatchString(v) {
		return false
	}
	_, err := base64.StdEncoding.DecodeString(v)
	return err == nil
}

func isUUID(v string) bool {
	return reUUID.MatchString(v)
}
