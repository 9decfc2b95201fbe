package distribution

import (
	"encoding/binary"

	"gitlab.com/NebulousLabs/fastrand"
)

// entropySource produces uniform 64-bit words from the fastrand generator.
type entropySource struct{}

// Uint64 implements Source.
func (entropySource) Uint64() uint64 {
	return binary.LittleEndian.Uint64(fastrand.Bytes(8))
}

// Entropy is a crypto-seeded Source for callers that do not need
// reproducible draws. It is safe for concurrent use.
var Entropy Source = entropySource{}
