package notify

import (
	"bufio"
	"context"
	"net"
	"testing"
	"time"

	"go.uber.org/zap"
)

func TestTCPSinkSend(t *testing.T) {
	client, server := net.Pipe()
	defer client.Close()

	sink := NewTCPSink(server, time.Second)

	received := make(chan string, 1)
	go func() {
		line, err := bufio.NewReader(client).ReadString('\n')
		if err == nil {
			received <- line
		}
	}()

	if err := sink.Send([]byte("{\"type\":\"NEW_QUESTION\"}\n")); err != nil {
		t.Fatalf("Send: %v", err)
	}

	select {
	case line := <-received:
		if line != "{\"type\":\"NEW_QUESTION\"}\n" {
			t.Errorf("received %q", line)
		}
	case <-time.After(time.Second):
		t.Fatal("payload never arrived")
	}
}

func TestTCPSinkSendAfterClose(t *testing.T) {
	client, server := net.Pipe()
	client.Close()

	sink := NewTCPSink(server, time.Second)
	_ = sink.Close()

	if err := sink.Send([]byte("x\n")); err == nil {
		t.Error("expected error writing to a closed connection")
	}
}

func TestTCPSinkWriteDeadline(t *testing.T) {
	// net.Pipe has no buffering: with nobody reading, the write must fail
	// once the deadline expires instead of blocking the broadcast pass.
	client, server := net.Pipe()
	defer client.Close()
	defer server.Close()

	sink := NewTCPSink(server, 50*time.Millisecond)

	done := make(chan error, 1)
	go func() { done <- sink.Send([]byte("stalled\n")) }()

	select {
	case err := <-done:
		if err == nil {
			t.Error("expected deadline error from a stalled sink")
		}
	case <-time.After(time.Second):
		t.Fatal("Send blocked past its write deadline")
	}
}

func TestTCPServerStopsOnCancel(t *testing.T) {
	b := NewBroadcaster(zap.NewNop())
	server := NewTCPServer("127.0.0.1:0", time.Second, b, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- server.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Run returned %v after cancellation", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not stop after cancellation")
	}
}
