package samplesheet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/carbocation/pfx"
	"github.com/gocarina/gocsv"
)

// DefaultFlowCellProductCode is the consumable the lab stocks; overridable
// per run.
const DefaultFlowCellProductCode = "FLO-PRO114"

// RunMetadata describes the sequencing run a sheet is generated for.
type RunMetadata struct {
	ExperimentID        string `json:"experiment_id"`
	FlowCellID          string `json:"flow_cell_id"`
	PositionID          string `json:"position_id"`
	Kit                 string `json:"kit"`
	FlowCellProductCode string `json:"flow_cell_product_code"`
}

// SheetEntry is one sample as exported from the LIMS.
type SheetEntry struct {
	SampleID               string `json:"sample_id"`
	BarcodeI7              string `json:"barcode_i7"`
	Barcode                string `json:"barcode"`
	Taxon                  string `json:"taxon"`
	GenomeSizeMb           string `json:"genome_size_mb"`
	GCContent              string `json:"gc_content"`
	OrderName              string `json:"order_name"`
	StockConcentration     string `json:"stock_concentration"`
	StockConcentrationUnit string `json:"stock_concentration_unit"`
	IsUrgent               bool   `json:"is_urgent"`
	LowMaterial            bool   `json:"low_material"`
}

// sheetOut fixes the column set and order MinKNOW expects.
type sheetOut struct {
	FlowCellID             string `csv:"flow_cell_id"`
	PositionID             string `csv:"position_id"`
	SampleID               string `csv:"sample_id"`
	ExperimentID           string `csv:"experiment_id"`
	FlowCellProductCode    string `csv:"flow_cell_product_code"`
	Kit                    string `csv:"kit"`
	Alias                  string `csv:"alias"`
	Type                   string `csv:"type"`
	Barcode                string `csv:"barcode"`
	BarcodeI7              string `csv:"cntn_cf_fk_barcode_i7"`
	ContentID              string `csv:"cntn_id"`
	Taxon                  string `csv:"cntn_cf_taxon"`
	GenomeSizeMb           string `csv:"cntn_cf_genomeSizeMb"`
	GCContent              string `csv:"cntn_cf_gcContent"`
	OrderName              string `csv:"cntn_cf_orderName"`
	StockConcentration     string `csv:"cntn_cf_stockConcentration"`
	StockConcentrationUnit string `csv:"cntn_cf_stockConcentration_unit"`
	IsUrgent               string `csv:"cntn_cf_isUrgent"`
	LowMaterial            string `csv:"cntn_cf_lowMaterial"`
}

// Generate renders a MinKNOW sample sheet CSV for the given run. The
// sample_id column is intentionally left empty; MinKNOW keys on alias.
func Generate(meta RunMetadata, entries []SheetEntry) (string, error) {
	if meta.ExperimentID == "" {
		meta.ExperimentID = "Unknown_Run"
	}
	if meta.FlowCellProductCode == "" {
		meta.FlowCellProductCode = DefaultFlowCellProductCode
	}

	rows := make([]sheetOut, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, sheetOut{
			FlowCellID:             meta.FlowCellID,
			PositionID:             meta.PositionID,
			ExperimentID:           meta.ExperimentID,
			FlowCellProductCode:    meta.FlowCellProductCode,
			Kit:                    meta.Kit,
			Alias:                  e.SampleID,
			Type:                   "test_sample",
			Barcode:                barcodeName(e.BarcodeI7, e.Barcode),
			BarcodeI7:              e.BarcodeI7,
			ContentID:              e.SampleID,
			Taxon:                  e.Taxon,
			GenomeSizeMb:           e.GenomeSizeMb,
			GCContent:              e.GCContent,
			OrderName:              e.OrderName,
			StockConcentration:     e.StockConcentration,
			StockConcentrationUnit: e.StockConcentrationUnit,
			IsUrgent:               strconv.FormatBool(e.IsUrgent),
			LowMaterial:            strconv.FormatBool(e.LowMaterial),
		})
	}

	out, err := gocsv.MarshalString(&rows)
	if err != nil {
		return "", pfx.Err(err)
	}
	return out, nil
}

// barcodeName converts i7 barcode labels (NB01, BC12) to the barcodeNN
// names the basecaller writes into sequencing summaries. Labels from other
// kits fall back to the LIMS barcode field.
func barcodeName(i7, fallback string) string {
	for _, prefix := range []string{"NB", "BC"} {
		if strings.HasPrefix(i7, prefix) {
			n, err := strconv.Atoi(i7[len(prefix):])
			if err != nil {
				return i7
			}
			return fmt.Sprintf("barcode%02d", n)
		}
	}
	return fallback
}
