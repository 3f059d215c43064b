package notification

import (
	"bufio"
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"math/big"
	"net"
	"strings"
	"testing"
	"time"
)

// fakeSMTPServer accepts one connection, speaks just enough ESMTP to receive a
// message and returns its DATA payload. With a TLS config it advertises
// STARTTLS and upgrades the connection when asked.
func fakeSMTPServer(t *testing.T, ln net.Listener, tlsCfg *tls.Config) <-chan string {
	t.Helper()
	received := make(chan string, 1)

	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer func() { _ = conn.Close() }()

		reader := bufio.NewReader(conn)
		reply := func(s string) { _, _ = conn.Write([]byte(s)) }
		secured := false
		var data strings.Builder

		reply("220 tireflow-test ESMTP\r\n")
		for {
			line, err := reader.ReadString('\n')
			if err != nil {
				received <- data.String()
				return
			}
			cmd := strings.ToUpper(strings.TrimSpace(line))
			switch {
			case strings.HasPrefix(cmd, "EHLO"), strings.HasPrefix(cmd, "HELO"):
				if tlsCfg != nil && !secured {
					reply("250-tireflow-test\r\n250-STARTTLS\r\n250 8BITMIME\r\n")
				} else {
					reply("250-tireflow-test\r\n250 8BITMIME\r\n")
				}
			case cmd == "STARTTLS":
				reply("220 ready to start TLS\r\n")
				tlsConn := tls.Server(conn, tlsCfg)
				conn = tlsConn
				reader = bufio.NewReader(tlsConn)
				reply = func(s string) { _, _ = tlsConn.Write([]byte(s)) }
				secured = true
			case cmd == "DATA":
				reply("354 end with <CRLF>.<CRLF>\r\n")
				for {
					dataLine, err := reader.ReadString('\n')
					if err != nil {
						received <- data.String()
						return
					}
					if strings.TrimRight(dataLine, "\r\n") == "." {
						break
					}
					data.WriteString(dataLine)
				}
				reply("250 accepted\r\n")
			case cmd == "QUIT":
				reply("221 bye\r\n")
				received <- data.String()
				return
			default:
				reply("250 ok\r\n")
			}
		}
	}()

	return received
}

// selfSignedCert issues a throwaway certificate for 127.0.0.1 and returns the
// server TLS config plus a pool that trusts it.
func selfSignedCert(t *testing.T) (*tls.Config, *x509.CertPool) {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	template := x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "127.0.0.1"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(time.Hour),
		KeyUsage:              x509.KeyUsageDigitalSignature | x509.KeyUsageCertSign,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth},
		BasicConstraintsValid: true,
		IsCA:                  true,
		IPAddresses:           []net.IP{net.ParseIP("127.0.0.1")},
	}
	der, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	if err != nil {
		t.Fatalf("create certificate: %v", err)
	}
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		t.Fatalf("parse certificate: %v", err)
	}
	pool := x509.NewCertPool()
	pool.AddCert(cert)

	serverCfg := &tls.Config{
		Certificates: []tls.Certificate{{Certificate: [][]byte{der}, PrivateKey: key}},
	}
	return serverCfg, pool
}

func TestSMTPSenderDeliversOverPlainConnection(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	received := fakeSMTPServer(t, ln, nil)

	host, port, _ := net.SplitHostPort(ln.Addr().String())
	sender := NewSMTPSender(SMTPConfig{Host: host, Port: port, From: "noreply@example.com"})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sender.Send(ctx, []string{"manager@example.com"}, "New Request", "<p>WP-1234</p>"); err != nil {
		t.Fatalf("send failed: %v", err)
	}

	msg := <-received
	for _, want := range []string{"Subject: New Request", "To: manager@example.com", "<p>WP-1234</p>"} {
		if !strings.Contains(msg, want) {
			t.Errorf("expected delivered message to contain %q, got %q", want, msg)
		}
	}
}

func TestSMTPSenderDeliversThroughStartTLS(t *testing.T) {
	serverCfg, pool := selfSignedCert(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	received := fakeSMTPServer(t, ln, serverCfg)

	host, port, _ := net.SplitHostPort(ln.Addr().String())
	sender := NewSMTPSender(SMTPConfig{Host: host, Port: port, From: "noreply@example.com"})
	// Trust the throwaway certificate; the handshake still verifies it
	// against the configured server name.
	sender.tlsConfig.RootCAs = pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sender.Send(ctx, []string{"tto@example.com"}, "Manager Approved", "<p>req-1</p>"); err != nil {
		t.Fatalf("send over starttls failed: %v", err)
	}

	msg := <-received
	if !strings.Contains(msg, "Subject: Manager Approved") || !strings.Contains(msg, "<p>req-1</p>") {
		t.Fatalf("expected message delivered over TLS, got %q", msg)
	}
}

func TestSMTPSenderHandshakeIdentity(t *testing.T) {
	sender := NewSMTPSender(SMTPConfig{Host: "smtp.example.com", Port: "587", From: "noreply@example.com"})
	if sender.tlsConfig == nil || sender.tlsConfig.ServerName != "smtp.example.com" {
		t.Fatalf("expected tls config bound to the smtp host, got %+v", sender.tlsConfig)
	}
	if sender.tlsConfig.InsecureSkipVerify {
		t.Fatal("certificate verification must stay enabled")
	}
}
