// alphvaultd runs the signing core as a daemon speaking the framed APDU
// protocol over TCP, standing in for the hardware transport during
// development and integration testing.
package main

import (
	"bufio"
	"crypto/rand"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"io"
	"net"
	"os"
	"strings"

	"github.com/btcsuite/btclog"

	"github.com/alphvault/alphvault"
	"github.com/alphvault/alphvault/keychain"
	"github.com/alphvault/alphvault/nvm"
	"github.com/alphvault/alphvault/review"
)

var log btclog.Logger

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "alphvaultd: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	backend := btclog.NewBackend(os.Stdout)
	log = backend.Logger("MAIN")
	deviceLog := backend.Logger("ALPH")
	reviewLog := backend.Logger("RVWR")
	level, _ := btclog.LevelFromString(cfg.DebugLevel)
	for _, l := range []btclog.Logger{log, deviceLog, reviewLog} {
		l.SetLevel(level)
	}
	alphvault.UseLogger(deviceLog)
	review.UseLogger(reviewLog)

	store, err := nvm.Open(cfg.DataDir)
	if err != nil {
		return err
	}
	defer store.Close()

	if cfg.ToggleBlindSigning {
		if err := store.Settings().ToggleBlindSigning(); err != nil {
			return err
		}
		fmt.Printf("blind signing enabled: %v\n",
			store.Settings().BlindSigningEnabled())
		return nil
	}

	seed, err := loadSeed(cfg.Seed)
	if err != nil {
		return err
	}
	keys, err := keychain.New(seed)
	if err != nil {
		return err
	}

	var prompter review.Prompter
	if cfg.AutoApprove {
		prompter = &autoPrompter{log: reviewLog}
	} else {
		prompter = &terminalPrompter{
			in:  bufio.NewReader(os.Stdin),
			out: os.Stdout,
		}
	}

	device := alphvault.NewDevice(store, keys, prompter)

	listener, err := net.Listen("tcp", cfg.Listen)
	if err != nil {
		return err
	}
	defer listener.Close()
	log.Infof("serving APDU transport on %s", listener.Addr())

	for {
		conn, err := listener.Accept()
		if err != nil {
			return err
		}
		// The device is single-threaded by design: connections are
		// served one at a time.
		serveConn(conn, device)
	}
}

// loadSeed decodes the configured seed, or generates an ephemeral one for
// throwaway runs.
func loadSeed(hexSeed string) ([]byte, error) {
	if hexSeed != "" {
		return hex.DecodeString(hexSeed)
	}
	seed := make([]byte, 32)
	if _, err := rand.Read(seed); err != nil {
		return nil, err
	}
	log.Warnf("no seed configured, generated ephemeral seed")
	return seed, nil
}

// serveConn exchanges length-prefixed APDUs with one host connection:
// four big-endian length bytes, then the frame; responses carry the
// payload followed by the two-byte status word.
func serveConn(conn net.Conn, device *alphvault.Device) {
	defer conn.Close()
	for {
		var lenBuf [4]byte
		if _, err := io.ReadFull(conn, lenBuf[:]); err != nil {
			return
		}
		frame := make([]byte, binary.BigEndian.Uint32(lenBuf[:]))
		if _, err := io.ReadFull(conn, frame); err != nil {
			return
		}

		resp, code := device.HandleAPDU(frame)
		out := make([]byte, 0, len(resp)+2)
		out = append(out, resp...)
		out = binary.BigEndian.AppendUint16(out, uint16(code))

		binary.BigEndian.PutUint32(lenBuf[:], uint32(len(out)))
		if _, err := conn.Write(lenBuf[:]); err != nil {
			return
		}
		if _, err := conn.Write(out); err != nil {
			return
		}
	}
}

// autoPrompter approves every page, logging what would have been shown.
type autoPrompter struct {
	log btclog.Logger
}

func (p *autoPrompter) StartReview() error { return nil }

func (p *autoPrompter) ReviewFields(title string, fields []review.Field) error {
	p.log.Infof("page %q", title)
	for _, f := range fields {
		p.log.Infof("  %s: %s", f.Name, f.Value)
	}
	return nil
}

func (p *autoPrompter) WarnExternalInputs() error {
	p.log.Infof("warning: transaction spends external inputs")
	return nil
}

func (p *autoPrompter) ReviewSelfTransfer(fee review.Field) error {
	p.log.Infof("self-transfer, %s: %s", fee.Name, fee.Value)
	return nil
}

func (p *autoPrompter) FinishReview(fields []review.Field) error {
	return p.ReviewFields("Confirm", fields)
}

func (p *autoPrompter) NotifyBlindSigningDisabled() {
	p.log.Warnf("blind signing is disabled, enable it in settings")
}

// terminalPrompter asks for a y/n decision on standard input.
type terminalPrompter struct {
	in  *bufio.Reader
	out io.Writer
}

func (p *terminalPrompter) ask(header string, fields []review.Field) error {
	fmt.Fprintf(p.out, "== %s ==\n", header)
	for _, f := range fields {
		fmt.Fprintf(p.out, "  %s: %s\n", f.Name, f.Value)
	}
	fmt.Fprintf(p.out, "approve? [y/N] ")
	line, err := p.in.ReadString('\n')
	if err != nil {
		return review.ErrUserCancelled
	}
	if strings.TrimSpace(strings.ToLower(line)) != "y" {
		return review.ErrUserCancelled
	}
	return nil
}

func (p *terminalPrompter) StartReview() error { return nil }

func (p *terminalPrompter) ReviewFields(title string, fields []review.Field) error {
	return p.ask(title, fields)
}

func (p *terminalPrompter) WarnExternalInputs() error {
	return p.ask("External inputs", []review.Field{{
		Name:  "Warning",
		Value: "transaction spends inputs not controlled by this device",
	}})
}

func (p *terminalPrompter) ReviewSelfTransfer(fee review.Field) error {
	return p.ask("Self-transfer", []review.Field{fee})
}

func (p *terminalPrompter) FinishReview(fields []review.Field) error {
	return p.ask("Confirm transaction", fields)
}

func (p *terminalPrompter) NotifyBlindSigningDisabled() {
	fmt.Fprintln(p.out, "blind signing is disabled; enable it in settings")
}
