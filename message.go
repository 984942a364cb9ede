// message.go
package redcore

import (
	"bytes"
	"compress/flate"
	"crypto/md5"
	"encoding/binary"
	"fmt"
	"hash"
	"io"
	"time"

	"github.com/gammazero/deque"
)

// HeaderField is one raw, as-received header line, in wire order.
// Grounded on redbot/message/__init__.py's HttpMessage.headers list of
// (name, value) tuples.
type HeaderField struct {
	Name  string
	Value string
}

// PayloadSample is one captured slice of the raw (pre-decoding) body,
// tagged with its starting offset. The bag keeps at most
// Config.PayloadSampleSlots of these, grounded on
// HttpMessage.payload_sample's 4-element cap in feed_body.
type PayloadSample struct {
	Offset int64
	Sample []byte
}

// HttpMessage is the half of an exchange common to requests and
// responses: header/body bookkeeping, decoded-body tracking, and the
// raw/decoded digests used for Content-Length and Content-MD5 checks.
// Grounded line-for-line on redbot/message/__init__.py's HttpMessage.
type HttpMessage struct {
	IsRequest bool
	Version   string
	BaseURI   string
	StartTime time.Time
	Complete  bool

	Headers       []HeaderField
	ParsedHeaders map[string]any
	HeaderLength  int

	PayloadLen    int64
	PayloadMD5    [md5.Size]byte
	payloadSample *deque.Deque[PayloadSample]

	CharacterEncoding     string
	DecodedLen            int64
	DecodedMD5            [md5.Size]byte
	DecodedSample         []byte
	DecodedSampleComplete bool

	TransferLength int64
	Trailers       []HeaderField
	HTTPError      error

	cfg      *Config
	exchange *ExchangeState

	rawMD5   hash.Hash
	decMD5   hash.Hash
	codings  []string
	coded    bytes.Buffer // raw still-content-coded bytes, accumulated until BodyDone
}

func newHttpMessage(cfg *Config, ex *ExchangeState, isRequest bool) *HttpMessage {
	return &HttpMessage{
		IsRequest:     isRequest,
		StartTime:     time.Now(),
		ParsedHeaders: make(map[string]any),
		payloadSample: deque.New[PayloadSample](),
		cfg:           cfg,
		exchange:      ex,
		rawMD5:        md5.New(),
		decMD5:        md5.New(),
	}
}

// SetHeaders stores the raw header block and runs it through the header
// registry, populating ParsedHeaders. Grounded on
// HttpMessage.set_headers / headers.process_headers (headers.go).
func (m *HttpMessage) SetHeaders(raw []HeaderField) {
	m.Headers = raw
	m.HeaderLength = headerBlockSize(raw)
	m.ParsedHeaders = ProcessHeaders(m.cfg, m.exchange, m.IsRequest, raw)
	if cc, ok := m.ParsedHeaders["content-encoding"].([]string); ok {
		m.codings = cc
	}
}

// headerBlockSize approximates the wire size of a header block: each
// field's "name: value\r\n" plus the terminating blank line, mirroring
// process_headers' header_block_size accumulation.
func headerBlockSize(fields []HeaderField) int {
	n := 2
	for _, f := range fields {
		n += len(f.Name) + len(f.Value) + 4
	}
	return n
}

// FeedBody consumes one chunk of the raw (possibly still content-coded)
// body as it arrives off the wire: it updates the raw digest/length/
// sample ring, then hands the chunk to processContentCodings, which
// buffers it; the decoded digest/length/sample are filled in by BodyDone.
// Grounded on
// HttpMessage.feed_body.
func (m *HttpMessage) FeedBody(chunk []byte) {
	if len(chunk) == 0 {
		return
	}
	m.PayloadLen += int64(len(chunk))
	m.rawMD5.Write(chunk)
	m.sampleRaw(chunk)
	m.processContentCodings(chunk)
}

func (m *HttpMessage) sampleRaw(chunk []byte) {
	slots := m.cfg.PayloadSampleSlots
	if slots <= 0 {
		slots = 4
	}
	offset := m.PayloadLen - int64(len(chunk))
	take := chunk
	const maxSample = 256
	if len(take) > maxSample {
		take = take[:maxSample]
	}
	cp := make([]byte, len(take))
	copy(cp, take)
	m.payloadSample.PushBack(PayloadSample{Offset: offset, Sample: cp})
	for m.payloadSample.Len() > slots {
		m.payloadSample.PopFront()
	}
}

// PayloadSamples returns the captured raw-body samples in offset order.
func (m *HttpMessage) PayloadSamples() []PayloadSample {
	out := make([]PayloadSample, m.payloadSample.Len())
	for i := 0; i < m.payloadSample.Len(); i++ {
		out[i] = m.payloadSample.At(i)
	}
	return out
}

// processContentCodings accumulates chunk for later decoding. Decoding
// happens once, in finishContentCodings (called from BodyDone), rather
// than incrementally per chunk: gzip's raw-deflate stream can't be
// inflated correctly from arbitrary chunk boundaries without re-buffering
// state the original's asynchronous feed_body handles with a persistent
// zlib decompressor object. Buffering the whole coded body (bounded by
// the same transport timeouts as the rest of the fetch) is the Go
// equivalent used here. Grounded on HttpMessage._process_content_codings.
func (m *HttpMessage) processContentCodings(chunk []byte) {
	m.coded.Write(chunk)
}

// finishContentCodings runs the accumulated coded body through every
// listed Content-Encoding, in reverse (outermost-first) order, only
// `gzip`/`x-gzip` being understood (`identity` is a no-op); an
// unrecognised coding stops decoding and no decoded body is recorded.
// Grounded on HttpMessage._process_content_codings /
// _read_gzip_header.
func (m *HttpMessage) finishContentCodings() {
	decoded := m.coded.Bytes()
	for i := len(m.codings) - 1; i >= 0; i-- {
		switch m.codings[i] {
		case "gzip", "x-gzip":
			out, zerr, err := gunzipAll(decoded)
			if zerr != nil {
				m.exchange.AddNote("BAD_ZLIB", map[string]any{"zlib_error": zerr.Error()})
				return
			}
			if err != nil {
				m.exchange.AddNote("BAD_GZIP", map[string]any{"gzip_error": err.Error()})
				return
			}
			decoded = out
		case "identity":
			// no-op
		default:
			return
		}
	}
	m.absorbDecoded(decoded)
}

func (m *HttpMessage) absorbDecoded(decoded []byte) {
	if len(decoded) == 0 {
		return
	}
	m.DecodedLen += int64(len(decoded))
	m.decMD5.Write(decoded)
	cap := m.cfg.DecodedSampleCap
	if cap <= 0 {
		cap = 128 * 1024
	}
	if len(m.DecodedSample) < cap {
		room := cap - len(m.DecodedSample)
		take := decoded
		if len(take) > room {
			take = take[:room]
		}
		m.DecodedSample = append(m.DecodedSample, take...)
	}
	if len(m.DecodedSample) >= cap {
		m.DecodedSampleComplete = false
	} else {
		m.DecodedSampleComplete = true
	}
}

// gunzipAll parses a gzip header (RFC 1952) off the front of buf, then
// inflates the raw deflate stream that follows. Reimplemented manually
// (rather than with compress/gzip) because the original reads the header
// fields individually and reports a BAD_GZIP note on a malformed header
// versus a BAD_ZLIB note on a malformed deflate stream; the two error
// return values let the caller tell which happened.
func gunzipAll(buf []byte) (out []byte, zlibErr, gzipErr error) {
	n, err := gzipHeaderLen(buf)
	if err != nil {
		return nil, nil, err
	}
	if n < 0 {
		return nil, nil, fmt.Errorf("truncated gzip header")
	}
	fr := flate.NewReader(bytes.NewReader(buf[n:]))
	defer fr.Close()
	out, err = io.ReadAll(fr)
	if err != nil {
		return nil, fmt.Errorf("deflate stream: %w", err), nil
	}
	return out, nil, nil
}

// gzipHeaderLen parses a gzip header per RFC 1952 §2.3 and returns its
// byte length, or -1 if buf doesn't yet contain a complete header.
// Grounded on HttpMessage._read_gzip_header's FEXTRA/FNAME/FCOMMENT/FHCRC
// flag handling.
func gzipHeaderLen(buf []byte) (int, error) {
	const (
		fText    = 1 << 0
		fHCRC    = 1 << 1
		fExtra   = 1 << 2
		fName    = 1 << 3
		fComment = 1 << 4
	)
	if len(buf) < 10 {
		return -1, nil
	}
	if buf[0] != 0x1f || buf[1] != 0x8b {
		return 0, fmt.Errorf("bad gzip magic")
	}
	if buf[2] != 8 {
		return 0, fmt.Errorf("unsupported gzip compression method %d", buf[2])
	}
	flags := buf[3]
	pos := 10
	if flags&fExtra != 0 {
		if len(buf) < pos+2 {
			return -1, nil
		}
		xlen := int(binary.LittleEndian.Uint16(buf[pos : pos+2]))
		pos += 2 + xlen
		if len(buf) < pos {
			return -1, nil
		}
	}
	if flags&fName != 0 {
		idx := bytes.IndexByte(buf[pos:], 0)
		if idx < 0 {
			return -1, nil
		}
		pos += idx + 1
	}
	if flags&fComment != 0 {
		idx := bytes.IndexByte(buf[pos:], 0)
		if idx < 0 {
			return -1, nil
		}
		pos += idx + 1
	}
	if flags&fHCRC != 0 {
		if len(buf) < pos+2 {
			return -1, nil
		}
		pos += 2
	}
	return pos, nil
}

// BodyDone finalizes the message once the body is fully received:
// computes the raw/decoded MD5s, and cross-checks them (and the raw
// length) against any declared Content-Length/Content-MD5 headers.
// Grounded on HttpMessage.body_done.
func (m *HttpMessage) BodyDone(declaredTrailers []HeaderField) {
	m.Complete = true
	m.Trailers = declaredTrailers
	m.finishContentCodings()
	copy(m.PayloadMD5[:], m.rawMD5.Sum(nil))
	copy(m.DecodedMD5[:], m.decMD5.Sum(nil))

	if cl, ok := m.ParsedHeaders["content-length"].(int64); ok {
		if cl == m.PayloadLen {
			m.exchange.AddNote("CL_CORRECT", nil)
		} else {
			m.exchange.AddNote("CL_INCORRECT", map[string]any{"body_length": m.PayloadLen})
		}
	}
	if declaredMD5, ok := m.ParsedHeaders["content-md5"].(string); ok && declaredMD5 != "" {
		calc := fmt.Sprintf("%x", m.PayloadMD5)
		if calc == declaredMD5 {
			m.exchange.AddNote("CMD5_CORRECT", nil)
		} else {
			m.exchange.AddNote("CMD5_INCORRECT", map[string]any{"calc_md5": calc})
		}
	}
}

// HttpRequest is the request half of an exchange: method, effective URI,
// and the common HttpMessage fields. Grounded on
// redbot/message/__init__.py's HttpRequest.
type HttpRequest struct {
	HttpMessage
	Method string
	URI    string // the resolved absolute-URI used on the wire
	IRI    string // the original, possibly non-ASCII, input
}

// HttpResponse is the response half of an exchange: status line plus the
// common HttpMessage fields. Grounded on HttpResponse in
// redbot/message/__init__.py.
type HttpResponse struct {
	HttpMessage
	StatusCode   string
	StatusPhrase string
}
