package converter

import (
	"errors"
	"testing"
)

func TestSourceExtension(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected Extension
	}{
		{"Simple csv", "report.csv", CSV},
		{"Nested xlsx", "/data/q1/report.xlsx", XLSX},
		{"Multiple dots", "report.final.txt", TXT},
		{"Dotted directory", "a.csv/file.xlsx", XLSX},
		{"Upper case kept", "REPORT.CSV", Extension(".CSV")},
		{"No extension", "Makefile", Extension("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SourceExtension(tt.path)
			if got != tt.expected {
				t.Errorf("SourceExtension(%q) = %q; want %q", tt.path, got, tt.expected)
			}
		})
	}
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		source   Extension
		target   Extension
		expected string
	}{
		{"Sibling file", "/data/report.csv", CSV, XLSX, "/data/report.xlsx"},
		{"Relative path", "report.xlsx", XLSX, TXT, "report.txt"},
		{"Only trailing extension", "a.csv/file.csv", CSV, XLSX, "a.csv/file.xlsx"},
		{"Repeated extension", "data.csv.csv", CSV, XLSX, "data.csv.xlsx"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OutputPath(tt.path, tt.source, tt.target)
			if got != tt.expected {
				t.Errorf("OutputPath(%q) = %q; want %q", tt.path, got, tt.expected)
			}
		})
	}
}

func TestParseExtension(t *testing.T) {
	tests := []struct {
		input    string
		expected Extension
		wantErr  bool
	}{
		{"xlsx", XLSX, false},
		{".csv", CSV, false},
		{"TXT", TXT, false},
		{"  .Xlsx ", XLSX, false},
		{"pdf", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseExtension(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownExtension) {
					t.Errorf("ParseExtension(%q) error = %v; want ErrUnknownExtension", tt.input, err)
				}
				if KindOf(err) != KindUnsupportedConversion {
					t.Errorf("ParseExtension(%q) kind = %v; want %v", tt.input, KindOf(err), KindUnsupportedConversion)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseExtension(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.expected {
				t.Errorf("ParseExtension(%q) = %q; want %q", tt.input, got, tt.expected)
			}
		})
	}
}
