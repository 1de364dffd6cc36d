package coupon

import (
	"crypto/rand"
	"math/big"
)

const (
	codePrefix     = "GIFT"
	codeRandLength = 8
	codeAlphabet   = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

type CodeGenerator interface {
	Generate() (Code, error)
}

type RandomCodeGenerator struct{}

func NewRandomCodeGenerator() *RandomCodeGenerator {
	return &RandomCodeGenerator{}
}

func (g *RandomCodeGenerator) Generate() (Code, error) {
	buf := make([]byte, 0, len(codePrefix)+codeRandLength)
	buf = append(buf, codePrefix...)
	limit := big.NewInt(int64(len(codeAlphabet)))
	for range codeRandLength {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", err
		}
		buf = append(buf, codeAlphabet[n.Int64()])
	}
	return Code(buf), nil
}
