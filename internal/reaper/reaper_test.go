package reaper

import (
	"bufio"
	"context"
	"net"
	"testing"
	"time"
)

func TestLabelFilter_Encode(t *testing.T) {
	f := LabelFilter{
		{Key: "org.containerlab.session-id", Value: "abc123"},
		{Key: "org.containerlab", Value: "true"},
	}
	want := "label=org.containerlab.session-id%3Dabc123&label=org.containerlab%3Dtrue\n"
	if got := f.Encode(); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func startFakeReaper(t *testing.T, respond string) string {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}
	t.Cleanup(func() { ln.Close() })

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()
		r := bufio.NewReader(conn)
		if _, err := r.ReadString('\n'); err != nil {
			return
		}
		if respond != "" {
			_, _ = conn.Write([]byte(respond))
		}
	}()

	return ln.Addr().String()
}

func TestRegister_SucceedsOnAck(t *testing.T) {
	addr := startFakeReaper(t, "ACK\n")

	c, err := Dial(context.Background(), addr)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer c.Close()

	filter := LabelFilter{{Key: "org.containerlab.session-id", Value: "abc"}}
	if err := c.Register(filter); err != nil {
		t.Fatalf("expected registration to succeed, got %v", err)
	}
}

func TestRegister_FailsWithoutAck(t *testing.T) {
	addr := startFakeReaper(t, "") // never answers

	c, err := Dial(context.Background(), addr)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer c.Close()

	filter := LabelFilter{{Key: "org.containerlab.session-id", Value: "abc"}}
	err = c.Register(filter)
	if _, ok := err.(*AckMissingError); !ok {
		t.Fatalf("expected *AckMissingError, got %T (%v)", err, err)
	}
}

func TestDial_FailsOnUnreachableAddr(t *testing.T) {
	_, err := Dial(context.Background(), "127.0.0.1:1")
	if _, ok := err.(*ConnectFailedError); !ok {
		t.Fatalf("expected *ConnectFailedError, got %T (%v)", err, err)
	}
}

func TestAckTimeout_IsOneSecond(t *testing.T) {
	if AckTimeout != time.Second {
		t.Errorf("AckTimeout changed, tests assume 1s, got %v", AckTimeout)
	}
}
