package client

import (
	"testing"

	"github.com/miyamoto-hai-lab/participants-id/lib/participant"
	"github.com/miyamoto-hai-lab/participants-id/lib/storage"
	"github.com/miyamoto-hai-lab/participants-id/lib/storage/storagetest"
	"github.com/miyamoto-hai-lab/participants-id/rpc/common"
	"github.com/miyamoto-hai-lab/participants-id/rpc/serializer"
	"github.com/miyamoto-hai-lab/participants-id/rpc/server"
	"github.com/miyamoto-hai-lab/participants-id/rpc/transport"
)

// loopbackTransport wires a client transport directly to a server handler,
// exercising the full serialize-dispatch-deserialize path without sockets.
type loopbackTransport struct {
	handler transport.ServerHandleFunc
}

func (l *loopbackTransport) RegisterHandler(handler transport.ServerHandleFunc) {
	l.handler = handler
}

func (l *loopbackTransport) Listen(config common.ServerConfig) error {
	return nil
}

func (l *loopbackTransport) Connect(config common.ClientConfig) error {
	return nil
}

func (l *loopbackTransport) Send(req []byte) ([]byte, error) {
	return l.handler(req), nil
}

func (l *loopbackTransport) Close() error {
	return nil
}

// newRemoteStorage builds a memory-backed server and a client connected to it
// through the loopback transport.
func newRemoteStorage(t *testing.T, s serializer.IRPCSerializer) storage.IStorage {
	t.Helper()

	loopback := &loopbackTransport{}

	srv, err := server.NewRPCServer(
		common.ServerConfig{Engine: string(storage.EngineMemory), LogLevel: "error"},
		loopback,
		s,
	)
	if err != nil {
		t.Fatalf("NewRPCServer failed: %v", err)
	}
	if err := srv.Serve(); err != nil {
		t.Fatalf("Serve failed: %v", err)
	}

	st, err := NewRPCStorage(common.ClientConfig{Endpoints: []string{"loopback"}}, loopback, s)
	if err != nil {
		t.Fatalf("NewRPCStorage failed: %v", err)
	}
	return st
}

// The remote engine must pass the same conformance suite as the local ones,
// with both wire encodings.
func Test(t *testing.T) {
	storagetest.RunStorageTests(t, "RPCStorage/JSON", func() storage.IStorage {
		return newRemoteStorage(t, serializer.NewJSONSerializer())
	})
	storagetest.RunStorageTests(t, "RPCStorage/GOB", func() storage.IStorage {
		return newRemoteStorage(t, serializer.NewGOBSerializer())
	})
}

// TestParticipantOverRPC runs the identifier lifecycle end to end against the
// remote engine.
func TestParticipantOverRPC(t *testing.T) {
	st := newRemoteStorage(t, serializer.NewJSONSerializer())

	p, err := participant.New(st, "remote_app", nil)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	id1, err := p.BrowserID()
	if err != nil {
		t.Fatalf("BrowserID failed: %v", err)
	}
	id2, err := p.BrowserID()
	if err != nil {
		t.Fatalf("BrowserID failed: %v", err)
	}
	if id1 != id2 {
		t.Errorf("Expected idempotent get-or-create over RPC, got %q then %q", id1, id2)
	}

	if err := p.SetAttribute("worker_id", "w-42"); err != nil {
		t.Fatalf("SetAttribute failed: %v", err)
	}
	got, err := p.GetAttribute("worker_id", nil)
	if err != nil {
		t.Fatalf("GetAttribute failed: %v", err)
	}
	if got != "w-42" {
		t.Errorf("Expected attribute to round-trip over RPC, got %v", got)
	}

	ok, err := p.Delete()
	if err != nil || !ok {
		t.Fatalf("Delete failed: ok=%v err=%v", ok, err)
	}
	if exists, _ := p.Exists(); exists {
		t.Errorf("Expected identifier to be gone after Delete")
	}
}
