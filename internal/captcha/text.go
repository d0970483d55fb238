package captcha

import "crypto/rand"

// answerAlphabet leaves out I, O, 0 and 1, which render too much alike.
const answerAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// AnswerLength is the number of characters in a generated challenge answer.
const AnswerLength = 6

// GenerateText returns length independent uniform draws from the restricted
// alphabet, using the crypto/rand source.
func GenerateText(length int) string {
	out := make([]byte, length)
	for i := range out {
		out[i] = answerAlphabet[randIndex()]
	}
	return string(out)
}

// randIndex draws a uniform index into the alphabet. Bytes at or above the
// largest multiple of len(answerAlphabet) are rejected to avoid modulo bias.
func randIndex() int {
	const limit = 256 / len(answerAlphabet) * len(answerAlphabet)
	var b [1]byte
	for {
		rand.Read(b[:])
		if int(b[0]) < limit {
			return int(b[0]) % len(answerAlphabet)
		}
	}
}
