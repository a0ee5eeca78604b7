// Package iojson writes command output as JSON and reads JSON input from
// files or piped stdin.
package iojson

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// WriteWith writes obj as indented JSON to w. If marshaling fails, a small
// JSON error document goes to ew instead so machine consumers always get
// valid JSON on one of the two streams.
func WriteWith(w, ew io.Writer, obj any) error {
	data, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		// json.Marshal escapes the message safely.
		msg, _ := json.Marshal(err.Error())
		_, werr := fmt.Fprintf(ew, `{"error":%s}`+"\n", msg)
		return werr
	}

	_, err = fmt.Fprintln(w, string(data))
	return err
}

// Write calls WriteWith on stdout and stderr.
func Write(obj any) error {
	return WriteWith(os.Stdout, os.Stderr, obj)
}

// WriteLine writes obj as a single compact JSON line, for JSONL output.
func WriteLine(w io.Writer, obj any) error {
	return json.NewEncoder(w).Encode(obj)
}
