package recorder

import (
	"encoding/binary"
	"os"
	"strings"
	"testing"

	"github.com/gogf/gf/v2/test/gtest"
)

func TestRecorderAssemblesWAV(t *testing.T) {
	dir := t.TempDir()
	gtest.C(t, func(t *gtest.T) {
		rec, err := New("conn-1", Options{Dir: dir})
		t.AssertNil(err)

		pcm := make([]byte, 3200)
		for i := range pcm {
			pcm[i] = byte(i)
		}
		t.AssertNil(rec.Append(pcm[:1600]))
		t.AssertNil(rec.Append(pcm[1600:]))

		result, err := rec.Finalize()
		t.AssertNil(err)
		t.AssertNE(result, nil)
		t.Assert(strings.HasSuffix(result.FilePath, ".wav"), true)
		t.Assert(result.Size, int64(44+len(pcm)))

		wav, err := os.ReadFile(result.FilePath)
		t.AssertNil(err)
		t.Assert(string(wav[0:4]), "RIFF")
		t.Assert(string(wav[8:12]), "WAVE")
		t.Assert(string(wav[36:40]), "data")
		t.Assert(binary.LittleEndian.Uint32(wav[40:44]), uint32(len(pcm)))
		t.Assert(binary.LittleEndian.Uint32(wav[24:28]), uint32(16000))
		t.Assert(binary.LittleEndian.Uint16(wav[22:24]), uint16(1))
		t.Assert(wav[44:], pcm)

		// The intermediate PCM file is gone once the WAV is assembled.
		_, err = os.Stat(strings.TrimSuffix(result.FilePath, ".wav") + ".pcm")
		t.Assert(os.IsNotExist(err), true)
	})
}

func TestRecorderEmptySession(t *testing.T) {
	dir := t.TempDir()
	gtest.C(t, func(t *gtest.T) {
		rec, err := New("conn-2", Options{Dir: dir})
		t.AssertNil(err)

		result, err := rec.Finalize()
		t.AssertNil(err)
		t.Assert(result, nil)

		entries, err := os.ReadDir(dir)
		t.AssertNil(err)
		t.Assert(len(entries), 0)
	})
}

func TestRecorderByteLimit(t *testing.T) {
	dir := t.TempDir()
	gtest.C(t, func(t *gtest.T) {
		rec, err := New("conn-3", Options{Dir: dir, MaxBytes: 10})
		t.AssertNil(err)

		t.AssertNil(rec.Append(make([]byte, 8)))
		t.AssertNE(rec.Append(make([]byte, 8)), nil)
		t.AssertNE(rec.Append([]byte{1}), nil)
	})
}

func TestRecorderRequiresDir(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		_, err := New("conn-4", Options{})
		t.Assert(err, ErrDisabled)
	})
}
