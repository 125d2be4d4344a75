package mandelview

// Kernel is the per-pixel evaluation capability: a pure function from a
// complex coordinate and an iteration bound to an escape result, invokable
// independently per pixel on any parallel substrate. The sequential Escape
// function is the reference implementation and the correctness oracle for
// every other substrate.
type Kernel interface {
	Evaluate(c complex128, maxIter int) EscapeResult
}

// KernelFunc adapts a plain function to the Kernel interface.
type KernelFunc func(c complex128, maxIter int) EscapeResult

func (f KernelFunc) Evaluate(c complex128, maxIter int) EscapeResult {
	return f(c, maxIter)
}

var _ Kernel = KernelFunc(Escape)

// RenderRequest is one remote render call on the server's /ws endpoint.
// The client sends it as a JSON text message; the server answers with a
// single binary message of SeqHeaderLen big-endian bytes holding Seq,
// followed by the PNG-encoded frame. A request with a newer Seq on the same
// connection supersedes the older one and cancels its in-flight pass.
type RenderRequest struct {
	Seq      uint64   `json:"seq"`
	Viewport Viewport `json:"viewport"`
	MaxIter  int      `json:"maxIter"`
}

// SeqHeaderLen is the size of the sequence-number prefix on every binary
// frame message.
const SeqHeaderLen = 8
