// seed genera un script SQL con los usuarios, áreas, bodegas y vínculos de un tenant
// a partir de una exportación CSV del backend.
//
// Uso: go run ./cmd/seed -tenant <id> [-latin1] [-out archivo.sql] datos.csv
// Sin -out escribe en stdout.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/jhoicas/inventario-admin/internal/infrastructure/seed"
)

func main() {
	tenant := flag.String("tenant", "", "tenant al que pertenecen los datos")
	latin1 := flag.Bool("latin1", false, "la entrada está en ISO-8859-1")
	outPath := flag.String("out", "", "archivo de salida (por defecto stdout)")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: seed -tenant <id> [-latin1] [-out archivo.sql] datos.csv")
		os.Exit(2)
	}
	f, err := os.Open(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	d, err := seed.Parse(f, seed.Options{TenantID: *tenant, Latin1: *latin1})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	var out io.Writer = os.Stdout
	if *outPath != "" {
		file, err := os.Create(*outPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Crear salida: %v\n", err)
			os.Exit(1)
		}
		defer file.Close()
		out = file
	}
	if err := d.WriteSQL(out); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "Generado: %d áreas, %d bodegas, %d usuarios, %d vínculos\n",
		len(d.Areas), len(d.Warehouses), len(d.Users), len(d.Links))
}
