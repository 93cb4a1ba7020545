package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestFormatCommand(t *testing.T) {
	tests := []struct {
		name    string
		run     func(cmdArgs []string) (string, error)
		args    []string
		want    string
		wantErr bool
	}{
		{"format seconds", runFormatCapture, []string{"35"}, "00:00:35", false},
		{"format hours", runFormatCapture, []string{"3661"}, "01:01:01", false},
		{"format negative", runFormatCapture, []string{"-1"}, "", true},
		{"format garbage", runFormatCapture, []string{"abc"}, "", true},
		{"parse", runParseCapture, []string{"01:01:01"}, "3661", false},
		{"parse invalid", runParseCapture, []string{"00:61:00"}, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.run(tt.args)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func runFormatCapture(args []string) (string, error) {
	var buf bytes.Buffer
	formatCmd.SetOut(&buf)
	defer formatCmd.SetOut(nil)
	err := runFormat(formatCmd, args)
	return strings.TrimSpace(buf.String()), err
}

func runParseCapture(args []string) (string, error) {
	var buf bytes.Buffer
	parseCmd.SetOut(&buf)
	defer parseCmd.SetOut(nil)
	err := runParse(parseCmd, args)
	return strings.TrimSpace(buf.String()), err
}
