package nmea

import (
	"fmt"
	"strconv"
	"strings"

	"gridnav/geodesy"
)

// nominalUERE scales HDOP into an approximate horizontal error in
// meters for display purposes.
const nominalUERE = 5.0

// parseCoord converts an NMEA ddmm.mmmm (or dddmm.mmmm) field plus its
// hemisphere letter to decimal degrees.
func parseCoord(value, hemi string, degDigits int) (float64, error) {
	if len(value) < degDigits+2 {
		return 0, fmt.Errorf("coordinate field too short: %q", value)
	}
	deg, err := strconv.ParseFloat(value[:degDigits], 64)
	if err != nil {
		return 0, err
	}
	min, err := strconv.ParseFloat(value[degDigits:], 64)
	if err != nil {
		return 0, err
	}

	decDeg := deg + min/60.0

	switch hemi {
	case "N", "E":
	case "S", "W":
		decDeg = -decDeg
	default:
		return 0, fmt.Errorf("invalid hemisphere: %q", hemi)
	}
	return decDeg, nil
}

// verifyChecksum strips the leading '$' and trailing '*hh', returning
// the sentence body if the XOR checksum matches.
func verifyChecksum(sentence string) (string, error) {
	if len(sentence) < 4 || sentence[0] != '$' {
		return "", fmt.Errorf("not an NMEA sentence")
	}
	star := strings.LastIndexByte(sentence, '*')
	if star < 0 || star+3 > len(sentence) {
		return "", fmt.Errorf("missing checksum")
	}
	body := sentence[1:star]

	want, err := strconv.ParseUint(sentence[star+1:star+3], 16, 8)
	if err != nil {
		return "", fmt.Errorf("bad checksum field: %w", err)
	}
	var got byte
	for i := 0; i < len(body); i++ {
		got ^= body[i]
	}
	if got != byte(want) {
		return "", fmt.Errorf("checksum mismatch: got %02X want %02X", got, want)
	}
	return body, nil
}

// ParseSentence extracts a position fix from a GGA or RMC sentence.
// Sentences of other types, corrupt sentences, fixless reports, and
// out-of-range positions all return ok=false; the caller just moves on
// to the next line.
func ParseSentence(sentence string) (geodesy.Coordinate, bool) {
	body, err := verifyChecksum(strings.TrimSpace(sentence))
	if err != nil {
		return geodesy.Coordinate{}, false
	}

	fields := strings.Split(body, ",")
	if len(fields) == 0 {
		return geodesy.Coordinate{}, false
	}

	// Talker prefix varies (GP, GN, GL); dispatch on the sentence type.
	kind := fields[0]
	if len(kind) == 5 {
		kind = kind[2:]
	}

	switch kind {
	case "GGA":
		return parseGGA(fields)
	case "RMC":
		return parseRMC(fields)
	}
	return geodesy.Coordinate{}, false
}

// parseGGA handles the fix sentence: lat/lng plus fix quality and HDOP.
func parseGGA(fields []string) (geodesy.Coordinate, bool) {
	if len(fields) < 9 {
		return geodesy.Coordinate{}, false
	}
	if quality, err := strconv.Atoi(fields[6]); err != nil || quality == 0 {
		return geodesy.Coordinate{}, false
	}

	lat, err := parseCoord(fields[2], fields[3], 2)
	if err != nil {
		return geodesy.Coordinate{}, false
	}
	lng, err := parseCoord(fields[4], fields[5], 3)
	if err != nil {
		return geodesy.Coordinate{}, false
	}

	c := geodesy.Coordinate{Lat: lat, Lng: lng}
	if hdop, err := strconv.ParseFloat(fields[8], 64); err == nil {
		c.HorizontalAccuracy = hdop * nominalUERE
	}
	if !c.Valid() {
		return geodesy.Coordinate{}, false
	}
	return c, true
}

// parseRMC handles the recommended-minimum sentence; status "A" means
// the fix is valid.
func parseRMC(fields []string) (geodesy.Coordinate, bool) {
	if len(fields) < 7 {
		return geodesy.Coordinate{}, false
	}
	if fields[2] != "A" {
		return geodesy.Coordinate{}, false
	}

	lat, err := parseCoord(fields[3], fields[4], 2)
	if err != nil {
		return geodesy.Coordinate{}, false
	}
	lng, err := parseCoord(fields[5], fields[6], 3)
	if err != nil {
		return geodesy.Coordinate{}, false
	}

	c := geodesy.Coordinate{Lat: lat, Lng: lng}
	if !c.Valid() {
		return geodesy.Coordinate{}, false
	}
	return c, true
}
