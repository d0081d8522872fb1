// Package chunker splits raw document text into ordered, size-bounded
// chunks that an extraction strategy can classify independently. The
// split is near-lossless: concatenating the chunk texts in order
// reproduces the source text up to whitespace normalization.
package chunker

import (
	"strings"

	"agentic_memo/pkg/models"
)

// DefaultMaxChunkSize is tuned to the practical input budget of the
// LLM extraction strategy.
const DefaultMaxChunkSize = 4000

// Chunk is an ephemeral, run-scoped slice of a RawDoc. It carries a
// back-reference to its source so strategies can build citations.
type Chunk struct {
	Index int             // Stable ordering key within the parent doc
	Text  string
	Doc   *models.RawDoc
}

// Split breaks text into chunks of at most maxSize bytes, preferring
// paragraph boundaries (blank-line-delimited blocks). A paragraph that
// alone exceeds maxSize is further split on sentence boundaries, never
// mid-word; a single oversized sentence is emitted as-is. Empty or
// whitespace-only input yields no chunks.
func Split(text string, maxSize int) []string {
	if maxSize <= 0 {
		maxSize = DefaultMaxChunkSize
	}
	if strings.TrimSpace(text) == "" {
		return nil
	}

	// Windows line endings would otherwise hide every paragraph boundary.
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var chunks []string
	var current strings.Builder

	flush := func() {
		if s := strings.TrimSpace(current.String()); s != "" {
			chunks = append(chunks, s)
		}
		current.Reset()
	}

	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}

		if len(para) > maxSize {
			// Oversized paragraph: close the running chunk, then pack
			// its sentences greedily.
			flush()
			for _, piece := range splitSentences(para, maxSize) {
				chunks = append(chunks, piece)
			}
			continue
		}

		if current.Len() > 0 && current.Len()+len(para)+2 > maxSize {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString("\n\n")
		}
		current.WriteString(para)
	}
	flush()

	return chunks
}

// splitSentences packs the sentences of a single oversized paragraph
// into pieces of at most maxSize bytes. A lone sentence longer than
// maxSize is kept whole rather than broken mid-word.
func splitSentences(para string, maxSize int) []string {
	sentences := Sentences(para)

	var pieces []string
	var current strings.Builder
	for _, s := range sentences {
		if current.Len() > 0 && current.Len()+len(s)+1 > maxSize {
			pieces = append(pieces, strings.TrimSpace(current.String()))
			current.Reset()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(s)
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		pieces = append(pieces, s)
	}
	return pieces
}

// Sentences splits on terminal punctuation followed by whitespace.
// The terminator stays attached to its sentence so the concatenation
// round-trips. Also used by the rule-based extraction strategy.
func Sentences(text string) []string {
	var out []string
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '.', '!', '?':
			// Boundary only when followed by whitespace (avoids "$5.2M").
			if i+1 < len(text) && (text[i+1] == ' ' || text[i+1] == '\n' || text[i+1] == '\t') {
				out = append(out, strings.TrimSpace(text[start:i+1]))
				start = i + 1
			}
		}
	}
	if rest := strings.TrimSpace(text[start:]); rest != "" {
		out = append(out, rest)
	}
	return out
}

// ChunkDocs turns a batch of raw documents into a flat, ordered chunk
// list. Documents with empty text contribute nothing; chunk indices are
// scoped to their parent document.
func ChunkDocs(docs []models.RawDoc, maxSize int) []Chunk {
	var chunks []Chunk
	for i := range docs {
		doc := &docs[i]
		for j, text := range Split(doc.Text, maxSize) {
			chunks = append(chunks, Chunk{Index: j, Text: text, Doc: doc})
		}
	}
	return chunks
}
