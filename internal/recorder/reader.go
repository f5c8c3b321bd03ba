// internal/recorder/reader.go
package recorder

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
)

// ReadDistanceLog parses a distance log back into tick pairs.
// Unparsable tokens become DistanceSentinel so tick alignment survives.
func ReadDistanceLog(r io.Reader) (DistanceLog, error) {
	var out DistanceLog

	var vals []int
	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	for sc.Scan() {
		v, err := strconv.Atoi(sc.Text())
		if err != nil {
			out.Malformed++
			v = DistanceSentinel
		}
		vals = append(vals, v)
	}
	if err := sc.Err(); err != nil {
		return out, fmt.Errorf("recorder: read distance log: %w", err)
	}

	if len(vals)%2 != 0 {
		// a run cut short mid-tick
		out.Malformed++
		vals = vals[:len(vals)-1]
	}

	out.Pairs = make([]DistancePair, 0, len(vals)/2)
	for i := 0; i+1 < len(vals); i += 2 {
		out.Pairs = append(out.Pairs, DistancePair{S1: vals[i], S2: vals[i+1]})
	}
	return out, nil
}

// ReadSoundLog parses a sound log into onset seconds. Any token starting
// with '-' is a sensor error sentinel and is skipped.
func ReadSoundLog(r io.Reader) (SoundLog, error) {
	var out SoundLog

	sc := bufio.NewScanner(r)
	sc.Split(bufio.ScanWords)
	for sc.Scan() {
		tok := sc.Text()
		if tok[0] == '-' {
			out.Errors++
			continue
		}
		v, err := strconv.Atoi(tok)
		if err != nil {
			out.Malformed++
			continue
		}
		out.Onsets = append(out.Onsets, v)
	}
	if err := sc.Err(); err != nil {
		return out, fmt.Errorf("recorder: read sound log: %w", err)
	}
	return out, nil
}

// ReadDistanceFile is ReadDistanceLog over a file path.
func ReadDistanceFile(path string) (DistanceLog, error) {
	f, err := os.Open(path)
	if err != nil {
		return DistanceLog{}, fmt.Errorf("recorder: %w", err)
	}
	defer f.Close()
	return ReadDistanceLog(f)
}

// ReadSoundFile is ReadSoundLog over a file path.
func ReadSoundFile(path string) (SoundLog, error) {
	f, err := os.Open(path)
	if err != nil {
		return SoundLog{}, fmt.Errorf("recorder: %w", err)
	}
	defer f.Close()
	return ReadSoundLog(f)
}
