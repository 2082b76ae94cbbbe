package stack

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/arvi-k/optisim/internal/optics"
)

// Remote is a Session backed by a solver daemon speaking newline-framed
// JSON over TCP. One request, one line; one response, one line. A mutex
// serializes calls so a Remote can be shared, though responses are
// strictly in order.
type Remote struct {
	mu     sync.Mutex
	conn   net.Conn
	r      *bufio.Reader
	nextID uint64
	logger *log.Logger
}

type request struct {
	ID     uint64         `json:"id"`
	Method string         `json:"method"`
	Params map[string]any `json:"params,omitempty"`
}

type response struct {
	ID     uint64          `json:"id"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// Dial connects to a solver daemon at addr.
func Dial(addr string, timeout time.Duration) (*Remote, error) {
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, fmt.Errorf("stack: dial %s: %w", addr, err)
	}
	return NewRemote(conn), nil
}

// NewRemote wraps an established connection. The Remote takes ownership
// and closes it on Close.
func NewRemote(conn net.Conn) *Remote {
	return &Remote{
		conn:   conn,
		r:      bufio.NewReader(conn),
		logger: log.WithPrefix("stack"),
	}
}

// SetLogger replaces the session logger.
func (c *Remote) SetLogger(l *log.Logger) { c.logger = l }

func (c *Remote) call(method string, params map[string]any, result any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	req := request{ID: c.nextID, Method: method, Params: params}
	payload, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("stack: encode %s: %w", method, err)
	}
	c.logger.Debug("call", "method", method, "id", req.ID)
	if _, err := c.conn.Write(append(payload, '\n')); err != nil {
		return fmt.Errorf("stack: send %s: %w", method, err)
	}

	line, err := c.r.ReadBytes('\n')
	if err != nil {
		return fmt.Errorf("stack: read %s response: %w", method, err)
	}
	var resp response
	if err := json.Unmarshal(line, &resp); err != nil {
		return fmt.Errorf("stack: decode %s response: %w", method, err)
	}
	if resp.ID != req.ID {
		return fmt.Errorf("stack: response id %d for request %d", resp.ID, req.ID)
	}
	if resp.Error != "" {
		return fmt.Errorf("stack: %s: %s", method, resp.Error)
	}
	if result != nil {
		if err := json.Unmarshal(resp.Result, result); err != nil {
			return fmt.Errorf("stack: decode %s result: %w", method, err)
		}
	}
	return nil
}

// complexPayload is the wire form of complex data: parallel real and
// imaginary parts.
type complexPayload struct {
	Re []float64 `json:"re"`
	Im []float64 `json:"im"`
}

func encodeComplex(values []complex128) complexPayload {
	p := complexPayload{Re: make([]float64, len(values)), Im: make([]float64, len(values))}
	for i, v := range values {
		p.Re[i] = real(v)
		p.Im[i] = imag(v)
	}
	return p
}

func (p complexPayload) decode() ([]complex128, error) {
	if len(p.Re) != len(p.Im) {
		return nil, fmt.Errorf("stack: complex payload has %d real and %d imaginary parts", len(p.Re), len(p.Im))
	}
	out := make([]complex128, len(p.Re))
	for i := range out {
		out[i] = complex(p.Re[i], p.Im[i])
	}
	return out, nil
}

func encodeIndex(index [][]complex128) []complexPayload {
	rows := make([]complexPayload, len(index))
	for i, row := range index {
		rows[i] = encodeComplex(row)
	}
	return rows
}

// wireResult is a solver response body: coordinate vectors plus real or
// complex variables.
type wireResult struct {
	Coords map[string][]float64      `json:"coords"`
	Real   map[string][]float64      `json:"real,omitempty"`
	Cplx   map[string]complexPayload `json:"complex,omitempty"`
}

func (w wireResult) raw() (optics.RawResult, error) {
	raw := make(optics.RawResult, len(w.Coords)+len(w.Real)+len(w.Cplx))
	for name, values := range w.Coords {
		raw[name] = values
	}
	for name, values := range w.Real {
		raw[name] = values
	}
	for name, payload := range w.Cplx {
		values, err := payload.decode()
		if err != nil {
			return nil, fmt.Errorf("stack: variable %q: %w", name, err)
		}
		raw[name] = values
	}
	return raw, nil
}

func (c *Remote) StackRT(index [][]complex128, thickness, freqs, angles []float64) (optics.RawResult, error) {
	var w wireResult
	err := c.call("stackrt", map[string]any{
		"index":     encodeIndex(index),
		"thickness": thickness,
		"frequency": freqs,
		"theta":     angles,
	}, &w)
	if err != nil {
		return nil, err
	}
	return w.raw()
}

func (c *Remote) StackField(index [][]complex128, thickness, freqs, angles []float64, args ...float64) (optics.RawResult, error) {
	var w wireResult
	err := c.call("stackfield", map[string]any{
		"index":     encodeIndex(index),
		"thickness": thickness,
		"frequency": freqs,
		"theta":     angles,
		"args":      args,
	}, &w)
	if err != nil {
		return nil, err
	}
	return w.raw()
}

func (c *Remote) GetIndex(name string, freqs []float64, component optics.Component) ([]complex128, error) {
	var p complexPayload
	err := c.call("getindex", map[string]any{
		"name":      name,
		"frequency": freqs,
		"component": int(component),
	}, &p)
	if err != nil {
		return nil, err
	}
	return p.decode()
}

func (c *Remote) AddMaterial(kind, name string) error {
	return c.call("addmaterial", map[string]any{"kind": kind, "name": name}, nil)
}

func (c *Remote) SetMaterial(name, property string, value any) error {
	return c.call("setmaterial", map[string]any{"name": name, "property": property, "value": value}, nil)
}

func (c *Remote) GetMaterial(name, property string) (any, error) {
	var value any
	err := c.call("getmaterial", map[string]any{"name": name, "property": property}, &value)
	if err != nil {
		return nil, err
	}
	return value, nil
}

func (c *Remote) DeleteMaterial(name string) error {
	return c.call("deletematerial", map[string]any{"name": name}, nil)
}

func (c *Remote) Close() error {
	return c.conn.Close()
}
