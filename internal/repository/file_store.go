package repository

import (
	"bufio"
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	"go.uber.org/zap"

	"go-catalog-engine/internal/model"
	"go-catalog-engine/pkg/validator"
)

const productFileHeader = "# name|price|stock|category|brand|rating"

// readLines calls fn for every non-blank line that is not a '#' comment. A
// missing file reads as empty.
func readLines(path string, fn func(n int, line string)) error {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	n := 0
	for sc.Scan() {
		n++
		line := strings.TrimRight(sc.Text(), "\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fn(n, line)
	}
	return sc.Err()
}

type productFileRepo struct {
	path   string
	logger *zap.SugaredLogger
}

// NewProductFileRepo stores products as pipe-delimited lines in path.
// Malformed or invalid lines are skipped with a warning.
func NewProductFileRepo(path string, logger *zap.SugaredLogger) ProductRepository {
	return &productFileRepo{path: path, logger: logger}
}

func (r *productFileRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	err := readLines(r.path, func(n int, line string) {
		p, err := ParseProductLine(line)
		if err == nil {
			err = validator.Check(&p)
		}
		if err != nil {
			r.logger.Warnw("skipping product line", "file", r.path, "line", n, "error", err)
			return
		}
		products = append(products, p)
	})
	if err != nil {
		return nil, fmt.Errorf("read products %s: %w", r.path, err)
	}
	return products, nil
}

func (r *productFileRepo) SaveAll(products []model.Product) error {
	var buf bytes.Buffer
	buf.WriteString(productFileHeader + "\n")
	for _, p := range products {
		buf.WriteString(FormatProductLine(p) + "\n")
	}
	if err := os.WriteFile(r.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write products %s: %w", r.path, err)
	}
	return nil
}

type cartFileRepo struct {
	path   string
	logger *zap.SugaredLogger
}

// NewCartFileRepo stores cart lines as "name|quantity".
func NewCartFileRepo(path string, logger *zap.SugaredLogger) CartRepository {
	return &cartFileRepo{path: path, logger: logger}
}

func (r *cartFileRepo) Load() ([]model.CartLine, error) {
	var lines []model.CartLine
	err := readLines(r.path, func(n int, line string) {
		l, err := ParseCartLine(line)
		if err == nil {
			err = validator.Check(&l)
		}
		if err != nil {
			r.logger.Warnw("skipping cart line", "file", r.path, "line", n, "error", err)
			return
		}
		lines = append(lines, l)
	})
	if err != nil {
		return nil, fmt.Errorf("read cart %s: %w", r.path, err)
	}
	return lines, nil
}

func (r *cartFileRepo) Save(lines []model.CartLine) error {
	var buf bytes.Buffer
	for _, l := range lines {
		buf.WriteString(FormatCartLine(l) + "\n")
	}
	if err := os.WriteFile(r.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write cart %s: %w", r.path, err)
	}
	return nil
}

type receiptFileRepo struct {
	path string
}

// NewReceiptFileRepo appends receipts to path as JSON lines.
func NewReceiptFileRepo(path string) ReceiptRepository {
	return &receiptFileRepo{path: path}
}

func (r *receiptFileRepo) Create(receipt *model.Receipt) error {
	data, err := json.Marshal(receipt)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(r.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open receipts %s: %w", r.path, err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("append receipt: %w", err)
	}
	return nil
}

// FindAll returns receipts newest first
func (r *receiptFileRepo) FindAll() ([]model.Receipt, error) {
	var receipts []model.Receipt
	var decodeErr error
	err := readLines(r.path, func(n int, line string) {
		if decodeErr != nil {
			return
		}
		var rc model.Receipt
		if err := json.Unmarshal([]byte(line), &rc); err != nil {
			decodeErr = fmt.Errorf("%w: receipt on line %d: %v", ErrMalformedLine, n, err)
			return
		}
		receipts = append(receipts, rc)
	})
	if err == nil {
		err = decodeErr
	}
	if err != nil {
		return nil, err
	}
	slices.Reverse(receipts)
	return receipts, nil
}
