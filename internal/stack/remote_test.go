package stack

import (
	"bufio"
	"encoding/json"
	"net"
	"strings"
	"testing"

	"github.com/arvi-k/optisim/internal/optics"
)

// serve runs a one-shot solver daemon on the far end of a pipe,
// answering each request with handle's result or error string.
func serve(t *testing.T, conn net.Conn, handle func(req request) (any, string)) {
	t.Helper()
	go func() {
		defer conn.Close()
		r := bufio.NewReader(conn)
		for {
			line, err := r.ReadBytes('\n')
			if err != nil {
				return
			}
			var req request
			if err := json.Unmarshal(line, &req); err != nil {
				return
			}
			result, errMsg := handle(req)
			resp := map[string]any{"id": req.ID}
			if errMsg != "" {
				resp["error"] = errMsg
			} else if result != nil {
				resp["result"] = result
			}
			payload, _ := json.Marshal(resp)
			if _, err := conn.Write(append(payload, '\n')); err != nil {
				return
			}
		}
	}()
}

func TestRemoteStackRT(t *testing.T) {
	client, server := net.Pipe()
	serve(t, server, func(req request) (any, string) {
		if req.Method != "stackrt" {
			return nil, "unexpected method " + req.Method
		}
		if _, ok := req.Params["index"]; !ok {
			return nil, "missing index"
		}
		return wireResult{
			Coords: map[string][]float64{"frequency": {1e14}, "theta": {0}},
			Real:   map[string][]float64{"Rs": {0.04}},
			Cplx:   map[string]complexPayload{"rs": {Re: []float64{0.2}, Im: []float64{-0.1}}},
		}, ""
	})

	c := NewRemote(client)
	defer c.Close()

	raw, err := c.StackRT([][]complex128{{1}, {1.5}, {1}}, []float64{0, 1e-7, 0}, []float64{1e14}, []float64{0})
	if err != nil {
		t.Fatalf("stackrt failed: %v", err)
	}
	if got := raw["Rs"].([]float64); got[0] != 0.04 {
		t.Errorf("Rs = %v, want 0.04", got)
	}
	if got := raw["rs"].([]complex128); got[0] != 0.2-0.1i {
		t.Errorf("rs = %v, want 0.2-0.1i", got)
	}
	if got := raw["frequency"].([]float64); got[0] != 1e14 {
		t.Errorf("frequency = %v, want 1e14", got)
	}
}

func TestRemoteSolverError(t *testing.T) {
	client, server := net.Pipe()
	serve(t, server, func(req request) (any, string) {
		return nil, "singular transfer matrix"
	})

	c := NewRemote(client)
	defer c.Close()

	_, err := c.StackRT(nil, nil, nil, nil)
	if err == nil || !strings.Contains(err.Error(), "singular transfer matrix") {
		t.Fatalf("expected the solver's error text, got %v", err)
	}
}

func TestRemoteGetIndex(t *testing.T) {
	client, server := net.Pipe()
	serve(t, server, func(req request) (any, string) {
		if req.Method != "getindex" {
			return nil, "unexpected method " + req.Method
		}
		if req.Params["name"] != "gold" {
			return nil, "unknown material"
		}
		return complexPayload{Re: []float64{0.5, 0.6}, Im: []float64{3.1, 3.0}}, ""
	})

	c := NewRemote(client)
	defer c.Close()

	idx, err := c.GetIndex("gold", []float64{1e14, 2e14}, optics.ComponentX)
	if err != nil {
		t.Fatalf("getindex failed: %v", err)
	}
	if len(idx) != 2 || idx[0] != 0.5+3.1i {
		t.Errorf("index = %v, want [0.5+3.1i 0.6+3i]", idx)
	}
}

func TestRemoteMaterialRoundTrip(t *testing.T) {
	client, server := net.Pipe()
	db := map[string]map[string]any{}
	serve(t, server, func(req request) (any, string) {
		name, _ := req.Params["name"].(string)
		switch req.Method {
		case "addmaterial":
			db[name] = map[string]any{}
			return nil, ""
		case "setmaterial":
			db[name][req.Params["property"].(string)] = req.Params["value"]
			return nil, ""
		case "getmaterial":
			return db[name][req.Params["property"].(string)], ""
		case "deletematerial":
			delete(db, name)
			return nil, ""
		}
		return nil, "unexpected method " + req.Method
	})

	c := NewRemote(client)
	defer c.Close()

	mat, err := AddMaterial(c, "lorentz", "osc")
	if err != nil {
		t.Fatalf("add material: %v", err)
	}
	if err := mat.Set("lorentz_resonance", 2e15); err != nil {
		t.Fatalf("set: %v", err)
	}
	if db["osc"]["Lorentz Resonance"] != 2e15 {
		t.Errorf("solver saw %v, want the translated property name with 2e15", db["osc"])
	}
	got, err := mat.Get("lorentz_resonance")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != 2e15 {
		t.Errorf("get = %v, want 2e15", got)
	}
	if err := mat.Delete(); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, ok := db["osc"]; ok {
		t.Error("material should be gone from the solver database")
	}
}
