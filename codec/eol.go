package codec

import (
	"golang.org/x/text/transform"
)

// normalizer rewrites CRLF and lone CR to LF.
type normalizer struct {
	transform.NopResetter
}

// NewlineNormalizer returns a Transformer converting every CR and CRLF
// line terminator to LF.
func NewlineNormalizer() transform.Transformer {
	return normalizer{}
}

func (normalizer) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		c := src[nSrc]
		if c != '\r' {
			if nDst >= len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst] = c
			nDst++
			nSrc++
			continue
		}
		// A CR at the end of src may be the first half of a CRLF.
		if nSrc+1 == len(src) && !atEOF {
			return nDst, nSrc, transform.ErrShortSrc
		}
		if nDst >= len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		dst[nDst] = '\n'
		nDst++
		nSrc++
		if nSrc < len(src) && src[nSrc] == '\n' {
			nSrc++
		}
	}
	return nDst, nSrc, nil
}

// expander writes each LF as the terminator of a LineEnding.
type expander struct {
	transform.NopResetter
	term []byte
}

// NewlineExpander returns a Transformer writing every LF as the
// terminator for le.
func NewlineExpander(le LineEnding) transform.Transformer {
	return expander{term: le.Terminator()}
}

func (e expander) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for nSrc < len(src) {
		c := src[nSrc]
		if c != '\n' {
			if nDst >= len(dst) {
				return nDst, nSrc, transform.ErrShortDst
			}
			dst[nDst] = c
			nDst++
			nSrc++
			continue
		}
		if nDst+len(e.term) > len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		nDst += copy(dst[nDst:], e.term)
		nSrc++
	}
	return nDst, nSrc, nil
}
