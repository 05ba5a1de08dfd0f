// Package nmea reads position fixes from an NMEA 0183 source, either a
// serial GPS receiver or a network stream.
package nmea

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"gridnav/config"
	"gridnav/geodesy"
)

// Client represents an active connection to a position source.
type Client struct {
	conn io.ReadWriteCloser
}

// Connect opens the position source described by the config.
func Connect(conf config.GPSConfig) (*Client, error) {
	switch strings.ToUpper(conf.Type) {
	case "SERIAL":
		conn, err := connectSerial(conf.Device, conf.Baud)
		if err != nil {
			return nil, err
		}
		return &Client{conn: conn}, nil

	case "TCP":
		conn, err := connectTCP(conf.Device)
		if err != nil {
			return nil, err
		}
		return &Client{conn: conn}, nil

	default:
		return nil, fmt.Errorf("unknown gps type in config: %s", conf.Type)
	}
}

// Start begins the sentence-reading loop. Lines that aren't valid
// position sentences are skipped. The channel is closed when the
// connection drops. Run as a goroutine.
func (c *Client) Start(positions chan<- geodesy.Coordinate) {
	scanner := bufio.NewScanner(c.conn)
	for scanner.Scan() {
		pos, ok := ParseSentence(scanner.Text())
		if !ok {
			continue
		}
		positions <- pos
	}
	close(positions)
}

// Close disconnects the client.
func (c *Client) Close() {
	if c.conn != nil {
		c.conn.Close()
	}
}
