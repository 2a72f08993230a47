package chat

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"strings"

	"siteworks/config"

	speech "cloud.google.com/go/speech/apiv1"
	"cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/api/option"
)

const (
	maxVoiceNoteBytes   = 5 * 1024 * 1024
	maxVoiceNoteSeconds = 60
)

// Transcriber converts a voice note recording to text.
type Transcriber interface {
	TranscribeWav(ctx context.Context, localWavPath string) (string, error)
}

// GoogleTranscriber implements Transcriber on Cloud Speech-to-Text.
type GoogleTranscriber struct{}

type waveHeader struct {
	RiffTag       [4]byte
	FileSize      uint32
	WaveTag       [4]byte
	FmtTag        [4]byte
	FmtSize       uint32
	AudioFormat   uint16
	NumChannels   uint16
	SampleRate    uint32
	ByteRate      uint32
	BlockAlign    uint16
	BitsPerSample uint16
	DataTag       [4]byte
	DataSize      uint32
}

func parseWaveHeader(data []byte) (*waveHeader, error) {
	if len(data) < 44 {
		return nil, errors.New("invalid WAV header length")
	}
	var header waveHeader
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, &header); err != nil {
		return nil, err
	}
	if string(header.RiffTag[:]) != "RIFF" || string(header.WaveTag[:]) != "WAVE" {
		return nil, errors.New("not a WAV file")
	}
	return &header, nil
}

func validateVoiceNote(header *waveHeader, size int) error {
	if size > maxVoiceNoteBytes {
		return fmt.Errorf("voice note exceeds %d bytes", maxVoiceNoteBytes)
	}
	if header.AudioFormat != 1 {
		return errors.New("voice note must be PCM encoded")
	}
	if header.ByteRate > 0 {
		seconds := header.DataSize / header.ByteRate
		if seconds > maxVoiceNoteSeconds {
			return fmt.Errorf("voice note exceeds %d seconds", maxVoiceNoteSeconds)
		}
	}
	return nil
}

// TranscribeWav runs synchronous recognition on a short PCM WAV recording.
func (t *GoogleTranscriber) TranscribeWav(ctx context.Context, localWavPath string) (string, error) {
	data, err := os.ReadFile(localWavPath)
	if err != nil {
		return "", fmt.Errorf("read voice note: %w", err)
	}

	header, err := parseWaveHeader(data)
	if err != nil {
		return "", err
	}
	if err := validateVoiceNote(header, len(data)); err != nil {
		return "", err
	}

	client, err := speech.NewClient(ctx,
		option.WithCredentialsFile(config.AppConfig.GoogleCredentialsPath))
	if err != nil {
		return "", fmt.Errorf("speech client: %w", err)
	}
	defer client.Close()

	resp, err := client.Recognize(ctx, &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:          speechpb.RecognitionConfig_LINEAR16,
			SampleRateHertz:   int32(header.SampleRate),
			AudioChannelCount: int32(header.NumChannels),
			LanguageCode:      "en-US",
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: data},
		},
	})
	if err != nil {
		return "", fmt.Errorf("speech recognize: %w", err)
	}

	var sb strings.Builder
	for _, result := range resp.Results {
		if len(result.Alternatives) > 0 {
			sb.WriteString(result.Alternatives[0].Transcript)
		}
	}
	return sb.String(), nil
}
