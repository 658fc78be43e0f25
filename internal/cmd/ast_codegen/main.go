package main

// ast_codegen writes the syntax tree node types of the lox package. Run it
// through `go generate ./...`.

import (
	"bytes"
	"fmt"
	"go/format"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// expressionTypes lists every node as "Name: Field Type, Field Type".
var expressionTypes = []string{
	"Binary: Op *Token, Left Expr, Right Expr",
	"Grouping: Expression Expr",
	"Literal: Value Value",
	"Unary: Op *Token, Expression Expr",
}

func main() {
	if len(os.Args) != 2 {
		fmt.Println("Usage: ast_codegen <output directory>")
		os.Exit(64)
	}

	outputDir, err := filepath.Abs(os.Args[1])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := defineAst(outputDir, "Expr", expressionTypes); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func defineAst(outputDir string, baseName string, types []string) error {
	src, err := generate(filepath.Base(outputDir), baseName, types)
	if err != nil {
		return err
	}
	fpath := filepath.Join(
		outputDir,
		fmt.Sprintf("%s.go", strings.ToLower(baseName)),
	)
	return os.WriteFile(fpath, src, 0644)
}

// generate renders the gofmt-ed source of the node types of baseName.
func generate(packageName string, baseName string, types []string) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Code generated by ast_codegen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %s\n\n", packageName)

	fmt.Fprintf(&buf, "// %s is a node of the syntax tree.\n", baseName)
	fmt.Fprintf(&buf, "type %s interface {\n", baseName)
	fmt.Fprintf(&buf, "\tAccept(visitor %sVisitor) (interface{}, error)\n", baseName)
	fmt.Fprintf(&buf, "}\n\n")

	defineVisitor(&buf, baseName, types)

	// Generate struct for each AST type
	for _, t := range types {
		typeName := strings.TrimSpace(strings.Split(t, ":")[0])
		fields := strings.TrimSpace(strings.Split(t, ":")[1])
		defineType(&buf, baseName, typeName, fields)
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format generated %s source: %w", baseName, err)
	}
	return src, nil
}

func defineVisitor(writer io.Writer, baseName string, types []string) {
	// We have one method for each AST type
	fmt.Fprintf(writer, "// %sVisitor is implemented by every pass over %s nodes.\n", baseName, baseName)
	fmt.Fprintf(writer, "type %sVisitor interface {\n", baseName)
	for _, t := range types {
		typeName := strings.TrimSpace(strings.Split(t, ":")[0])
		fmt.Fprintf(
			writer,
			"\tVisit%s%s(%s *%s%s) (interface{}, error)\n",
			typeName, baseName,
			strings.ToLower(baseName),
			typeName, baseName,
		)
	}
	fmt.Fprintf(writer, "}\n")
}

func defineType(
	writer io.Writer,
	baseName string,
	typeName string,
	fieldList string,
) {
	var (
		fieldNames []string
		fieldTypes []string
	)
	for _, f := range strings.Split(fieldList, ",") {
		parts := strings.Fields(f)
		fieldNames = append(fieldNames, parts[0])
		fieldTypes = append(fieldTypes, parts[1])
	}

	// Struct definition
	fmt.Fprintf(writer, "\ntype %s%s struct {\n", typeName, baseName)
	for i := range fieldNames {
		fmt.Fprintf(writer, "\t%s %s\n", fieldNames[i], fieldTypes[i])
	}
	fmt.Fprintf(writer, "}\n\n")

	// Constructor
	var params, args []string
	for i, name := range fieldNames {
		param := strings.ToLower(name[:1]) + name[1:]
		params = append(params, param+" "+fieldTypes[i])
		args = append(args, param)
	}
	fmt.Fprintf(
		writer,
		"func New%s%s(%s) *%s%s {\n",
		typeName, baseName,
		strings.Join(params, ", "),
		typeName, baseName,
	)
	fmt.Fprintf(
		writer,
		"\treturn &%s%s{%s}\n",
		typeName, baseName,
		strings.Join(args, ", "),
	)
	fmt.Fprintf(writer, "}\n\n")

	// Accept method
	fmt.Fprintf(
		writer,
		"func (%s *%s%s) Accept(visitor %sVisitor) (interface{}, error) {\n",
		strings.ToLower(baseName),
		typeName, baseName,
		baseName,
	)
	fmt.Fprintf(
		writer,
		"\treturn visitor.Visit%s%s(%s)\n",
		typeName, baseName,
		strings.ToLower(baseName),
	)
	fmt.Fprintf(writer, "}\n")
}
