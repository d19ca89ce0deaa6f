// converter/image.go

package converter

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"MediaConverter/common"

	icoenc "github.com/Kodeworks/golang-image-ico"
	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/go-pdf/fpdf"
	"github.com/jsummers/gobmp"
	"github.com/nfnt/resize"

	_ "github.com/fyne-io/image/ico"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// maxIconSize is the largest edge the ICO container can describe
const maxIconSize = 256

// ImageOptions holds the encoder parameters taken from the settings
type ImageOptions struct {
	JPEGQuality  int
	WebPLossless bool
	WebPQuality  float32
}

// ImageOptionsFromSettings extracts the encoder options from the user settings
func ImageOptionsFromSettings(s common.Settings) ImageOptions {
	return ImageOptions{
		JPEGQuality:  s.JPEGQuality,
		WebPLossless: s.WebPLossless,
		WebPQuality:  float32(s.WebPQuality),
	}
}

// ImageConverter converts still images in process.
type ImageConverter struct {
	opts   ImageOptions
	logger *common.Logger
}

// NewImageConverter creates an image converter. A nil logger disables logging.
func NewImageConverter(opts ImageOptions, logger *common.Logger) *ImageConverter {
	def := ImageOptionsFromSettings(common.DefaultSettings())
	if opts.JPEGQuality <= 0 || opts.JPEGQuality > 100 {
		opts.JPEGQuality = def.JPEGQuality
	}
	if opts.WebPQuality <= 0 || opts.WebPQuality > 100 {
		opts.WebPQuality = def.WebPQuality
	}
	return &ImageConverter{opts: opts, logger: logger}
}

// Category implements Converter
func (c *ImageConverter) Category() common.Category {
	return common.CategoryImage
}

// Convert decodes inputPath and writes it beside the input in the requested format.
// The output is encoded in memory first, so a failing encoder leaves no file behind.
func (c *ImageConverter) Convert(ctx context.Context, inputPath, format string) (outputPath string, err error) {
	defer recoverPanic(inputPath, &err)

	token := common.NormalizeFormat(format)
	if err := checkRequest(ctx, common.CategoryImage, inputPath, token); err != nil {
		return "", err
	}

	outputPath = common.OutputPathFor(inputPath, token)
	if err := checkOutput(inputPath, outputPath); err != nil {
		return "", err
	}

	img, err := decodeImage(inputPath)
	if err != nil {
		return "", err
	}
	if err := cancelled(ctx, inputPath); err != nil {
		return "", err
	}

	libFormat := common.ImageLibraryFormat(token)
	data, err := c.encode(img, libFormat)
	if err != nil {
		return "", common.NewOperationError(common.KindUnsupportedOutput, common.OperationConvert, inputPath,
			fmt.Sprintf("cannot encode as %s: %v", libFormat, err), err)
	}

	if err := writeAtomic(outputPath, data); err != nil {
		return "", common.NewOperationError(common.KindIOError, common.OperationConvert, outputPath, "", err)
	}

	c.logger.Debug("Image %s decoded as %dx%d, wrote %d bytes of %s to %s",
		inputPath, img.Bounds().Dx(), img.Bounds().Dy(), len(data), libFormat, outputPath)
	return outputPath, nil
}

// decodeImage opens the file and classifies every failure
func decodeImage(path string) (image.Image, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err == nil {
		return img, nil
	}

	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, common.NewOperationError(common.KindNotFound, common.OperationConvert, path, "", err)
		}
		return nil, common.NewOperationError(common.KindIOError, common.OperationConvert, path, "", err)
	}

	// Some BMP variants (OS/2 headers, RLE compression) are only understood by gobmp
	if strings.EqualFold(filepath.Ext(path), ".bmp") && !errors.Is(err, image.ErrFormat) {
		if legacy, legacyErr := decodeLegacyBMP(path); legacyErr == nil {
			return legacy, nil
		}
	}

	if errors.Is(err, image.ErrFormat) {
		return nil, common.NewOperationError(common.KindUnsupportedInput, common.OperationConvert, path,
			"cannot identify image file", err)
	}
	return nil, common.NewOperationError(common.KindCorrupt, common.OperationConvert, path, err.Error(), err)
}

func decodeLegacyBMP(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return gobmp.Decode(f)
}

func (c *ImageConverter) encode(img image.Image, libFormat string) ([]byte, error) {
	var buf bytes.Buffer
	var err error

	switch libFormat {
	case "JPEG":
		err = imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(c.opts.JPEGQuality))
	case "PNG":
		err = imaging.Encode(&buf, img, imaging.PNG)
	case "GIF":
		err = imaging.Encode(&buf, img, imaging.GIF)
	case "TIFF":
		err = imaging.Encode(&buf, img, imaging.TIFF)
	case "BMP":
		err = imaging.Encode(&buf, img, imaging.BMP)
	case "WEBP":
		err = webp.Encode(&buf, img, &webp.Options{
			Lossless: c.opts.WebPLossless,
			Quality:  c.opts.WebPQuality,
		})
	case "ICO":
		err = encodeICO(&buf, img)
	case "PDF":
		err = encodePDF(&buf, img)
	default:
		err = imaging.ErrUnsupportedFormat
	}

	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// encodeICO writes a single-image icon, downscaling anything larger than the format allows
func encodeICO(buf *bytes.Buffer, img image.Image) error {
	b := img.Bounds()
	if b.Dx() > maxIconSize || b.Dy() > maxIconSize {
		img = resize.Thumbnail(maxIconSize, maxIconSize, img, resize.Lanczos3)
	}
	return icoenc.Encode(buf, img)
}

// encodePDF writes a one-page document sized to the image at 72 dpi
func encodePDF(buf *bytes.Buffer, img image.Image) error {
	var png bytes.Buffer
	if err := imaging.Encode(&png, img, imaging.PNG); err != nil {
		return fmt.Errorf("failed to embed image: %w", err)
	}

	w := float64(img.Bounds().Dx())
	h := float64(img.Bounds().Dy())
	if w <= 0 || h <= 0 {
		return fmt.Errorf("image has no pixels")
	}

	// orientation stays "P": fpdf swaps the custom size for "L"
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "pt",
		Size:           fpdf.SizeType{Wd: w, Ht: h},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	pdf.RegisterImageOptionsReader("page", fpdf.ImageOptions{ImageType: "PNG"}, &png)
	pdf.ImageOptions("page", 0, 0, w, h, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(buf)
}

// writeAtomic writes data to a temporary file beside path and renames it into place
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write output file: %w", err)
	}
	tmp.Chmod(0644)
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close output file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to move output file into place: %w", err)
	}
	return nil
}
