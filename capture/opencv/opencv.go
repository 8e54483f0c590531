// Package opencv implements the capture interfaces on top of gocv.
package opencv

import (
	"errors"
	"fmt"
	"image"

	"gocv.io/x/gocv"

	"github.com/maastricht-university/veracity-pipeline/capture"
)

// Webcam reads from a local camera and writes every frame to a video file.
type Webcam struct {
	cfg    capture.Config
	dev    *gocv.VideoCapture
	writer *gocv.VideoWriter
	frame  gocv.Mat
}

func NewWebcam(cfg capture.Config) *Webcam {
	return &Webcam{cfg: cfg}
}

func (w *Webcam) Open(videoPath string) error {
	dev, err := gocv.OpenVideoCapture(w.cfg.DeviceID)
	if err != nil {
		return fmt.Errorf("open video capture %d: %w", w.cfg.DeviceID, err)
	}
	w.dev = dev
	w.frame = gocv.NewMat()
	if !dev.IsOpened() {
		return fmt.Errorf("could not open video capture %d", w.cfg.DeviceID)
	}

	dev.Set(gocv.VideoCaptureFrameWidth, float64(w.cfg.Width))
	dev.Set(gocv.VideoCaptureFrameHeight, float64(w.cfg.Height))

	writer, err := gocv.VideoWriterFile(videoPath, w.cfg.Codec, w.cfg.FPS, w.cfg.Width, w.cfg.Height, true)
	if err != nil {
		return fmt.Errorf("create video writer: %w", err)
	}
	w.writer = writer
	return nil
}

func (w *Webcam) Grab() error {
	if w.dev == nil || w.writer == nil {
		return errors.New("webcam not open")
	}
	if ok := w.dev.Read(&w.frame); !ok || w.frame.Empty() {
		return errors.New("failed to read video frame")
	}
	if w.frame.Cols() != w.cfg.Width || w.frame.Rows() != w.cfg.Height {
		gocv.Resize(w.frame, &w.frame, image.Pt(w.cfg.Width, w.cfg.Height), 0, 0, gocv.InterpolationLinear)
	}
	return w.writer.Write(w.frame)
}

// Close releases the writer, the frame buffer and the device. It is safe to
// call on a partially opened webcam.
func (w *Webcam) Close() error {
	var errs []error
	if w.writer != nil {
		errs = append(errs, w.writer.Close())
		w.writer = nil
	}
	if w.dev != nil {
		errs = append(errs, w.dev.Close())
		w.dev = nil
		errs = append(errs, w.frame.Close())
	}
	return errors.Join(errs...)
}

// Frames reads stills back from recorded video files.
type Frames struct{}

func (Frames) FirstFrame(videoPath string) ([]byte, error) {
	vc, err := gocv.VideoCaptureFile(videoPath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", videoPath, err)
	}
	defer vc.Close()

	img := gocv.NewMat()
	defer img.Close()
	if ok := vc.Read(&img); !ok || img.Empty() {
		return nil, fmt.Errorf("read first frame of %s: %w", videoPath, capture.ErrSensorFailure)
	}

	buf, err := gocv.IMEncode(gocv.JPEGFileExt, img)
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	defer buf.Close()

	out := make([]byte, buf.Len())
	copy(out, buf.GetBytes())
	return out, nil
}

var (
	_ capture.Camera      = (*Webcam)(nil)
	_ capture.FrameReader = Frames{}
)
