package provablyfair

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"strconv"
)

const segmentsPerHash = 8

// Roll derives any number of independent sub-values from one
// HMAC-SHA256(serverSeed, clientSeed:nonce) digest. It is a pure function
// of its three inputs, which is what makes outcomes verifiable after the
// server seed is revealed.
type Roll struct {
	sum    []byte
	sumHex string
}

func NewRoll(serverSeed, clientSeed string, nonce uint64) *Roll {
	mac := hmac.New(sha256.New, []byte(serverSeed))
	mac.Write([]byte(clientSeed + ":" + strconv.FormatUint(nonce, 10)))
	sum := mac.Sum(nil)
	return &Roll{sum: sum, sumHex: hex.EncodeToString(sum)}
}

// segment returns the i-th 4-byte slice. The base digest carries eight;
// beyond that, further blocks come from rehashing hash:blockIndex.
func (r *Roll) segment(i int) []byte {
	if i < segmentsPerHash {
		return r.sum[i*4 : i*4+4]
	}
	j := i - segmentsPerHash
	block := sha256.Sum256([]byte(r.sumHex + ":" + strconv.Itoa(j/segmentsPerHash)))
	off := (j % segmentsPerHash) * 4
	return block[off : off+4]
}

// Float maps sub-value i into [0, 1).
func (r *Roll) Float(i int) float64 {
	return float64(binary.BigEndian.Uint32(r.segment(i))) / (1 << 32)
}

// Int maps sub-value i into [min, max] inclusive.
func (r *Roll) Int(i, min, max int) int {
	return min + int(r.Float(i)*float64(max-min+1))
}
