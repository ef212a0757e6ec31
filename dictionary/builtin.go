package dictionary

import "study-agent/corpus"

// Curated biomedical abbreviation synonyms. Disease entries cover the TCGA
// project codes plus common clinical shorthand; techniques and cell types
// follow the corpus's standard forms. Keys are lowercase; Lookup lowercases
// before consulting this table.

var builtinDiseases = map[string]string{
	// TCGA project codes
	"acc":  "adrenocortical carcinoma",
	"blca": "bladder urothelial carcinoma",
	"brca": "breast invasive carcinoma",
	"cesc": "cervical squamous cell carcinoma",
	"chol": "cholangiocarcinoma",
	"coad": "colon adenocarcinoma",
	"dlbc": "diffuse large B-cell lymphoma",
	"esca": "esophageal carcinoma",
	"gbm":  "glioblastoma multiforme",
	"hnsc": "head and neck squamous cell carcinoma",
	"kich": "kidney chromophobe",
	"kirc": "kidney renal clear cell carcinoma",
	"kirp": "kidney renal papillary cell carcinoma",
	"laml": "acute myeloid leukemia",
	"lgg":  "brain lower grade glioma",
	"lihc": "liver hepatocellular carcinoma",
	"luad": "lung adenocarcinoma",
	"lusc": "lung squamous cell carcinoma",
	"meso": "mesothelioma",
	"ov":   "ovarian serous cystadenocarcinoma",
	"paad": "pancreatic adenocarcinoma",
	"pcpg": "pheochromocytoma and paraganglioma",
	"prad": "prostate adenocarcinoma",
	"read": "rectum adenocarcinoma",
	"sarc": "sarcoma",
	"skcm": "skin cutaneous melanoma",
	"stad": "stomach adenocarcinoma",
	"tgct": "testicular germ cell tumor",
	"thca": "thyroid carcinoma",
	"thym": "thymoma",
	"ucec": "uterine corpus endometrial carcinoma",
	"ucs":  "uterine carcinosarcoma",
	"uvm":  "uveal melanoma",

	// Common cancer abbreviations
	"tnbc":  "triple-negative breast cancer",
	"dcis":  "ductal carcinoma in situ",
	"nsclc": "non-small cell lung cancer",
	"sclc":  "small cell lung cancer",
	"crc":   "colorectal cancer",
	"hcc":   "hepatocellular carcinoma",
	"rcc":   "renal cell carcinoma",
	"pdac":  "pancreatic ductal adenocarcinoma",
	"hnscc": "head and neck squamous cell carcinoma",
	"oscc":  "oral squamous cell carcinoma",
	"npc":   "nasopharyngeal carcinoma",
	"scc":   "squamous cell carcinoma",
	"cscc":  "cutaneous squamous cell carcinoma",
	"bcc":   "basal cell carcinoma",
	"mcc":   "merkel cell carcinoma",
	"ctcl":  "cutaneous T-cell lymphoma",
	"hgsoc": "high-grade serous ovarian cancer",
	"crpc":  "castration-resistant prostate cancer",
	"dipg":  "diffuse intrinsic pontine glioma",
	"aml":   "acute myeloid leukemia",
	"cml":   "chronic myeloid leukemia",
	"all":   "acute lymphoblastic leukemia",
	"cll":   "chronic lymphocytic leukemia",
	"apl":   "acute promyelocytic leukemia",
	"mds":   "myelodysplastic syndrome",
	"dlbcl": "diffuse large B-cell lymphoma",
	"hl":    "Hodgkin lymphoma",
	"nhl":   "non-Hodgkin lymphoma",
	"fl":    "follicular lymphoma",
	"mcl":   "mantle cell lymphoma",
	"mm":    "multiple myeloma",
	"ews":   "Ewing sarcoma",
	"net":   "neuroendocrine tumor",
	"nec":   "neuroendocrine carcinoma",

	// Non-cancer diseases
	"sle":   "systemic lupus erythematosus",
	"scle":  "subacute cutaneous lupus erythematosus",
	"ra":    "rheumatoid arthritis",
	"ibd":   "inflammatory bowel disease",
	"uc":    "ulcerative colitis",
	"ms":    "multiple sclerosis",
	"copd":  "chronic obstructive pulmonary disease",
	"ipf":   "idiopathic pulmonary fibrosis",
	"nafld": "non-alcoholic fatty liver disease",
	"nash":  "non-alcoholic steatohepatitis",
	"t1d":   "type 1 diabetes",
	"t2d":   "type 2 diabetes",
	"als":   "amyotrophic lateral sclerosis",
	"hiv":   "human immunodeficiency virus",
	"hbv":   "hepatitis B virus",
	"hcv":   "hepatitis C virus",
	"tb":    "tuberculosis",
	"covid": "COVID-19",
}

var builtinTechniques = map[string]string{
	"scrnaseq":                                   "scRNA-seq",
	"single-cell rna-seq":                        "scRNA-seq",
	"single cell rna sequencing":                 "scRNA-seq",
	"snrnaseq":                                   "snRNA-seq",
	"single-nucleus rna-seq":                     "snRNA-seq",
	"single-cell atac-seq":                       "scATAC-seq",
	"chromatin accessibility":                    "ATAC-seq",
	"atacseq":                                    "ATAC-seq",
	"chromatin immunoprecipitation sequencing":   "ChIP-seq",
	"chip sequencing":                            "ChIP-seq",
	"rnaseq":                                     "RNA-seq",
	"rna sequencing":                             "RNA-seq",
	"rna-sequencing":                             "RNA-seq",
	"spatial transcriptomics":                    "spatial transcriptomics",
	"microrna":                                   "miRNA",
	"whole genome sequencing":                    "WGS",
	"whole exome sequencing":                     "WES",
	"whole genome bisulfite sequencing":          "WGBS",
	"reduced representation bisulfite sequencing": "RRBS",
	"polymerase chain reaction":                  "PCR",
	"enzyme-linked immunosorbent assay":          "ELISA",
}

var builtinCellTypes = map[string]string{
	"regulatory t cell":                    "Treg",
	"regulatory t cells":                   "Tregs",
	"natural killer cell":                  "NK cell",
	"natural killer cells":                 "NK cells",
	"dendritic cell":                       "DC",
	"tumor-associated macrophage":          "TAM",
	"tumor-associated macrophages":         "TAMs",
	"myeloid-derived suppressor cell":      "MDSC",
	"cancer-associated fibroblast":         "CAF",
	"cancer-associated fibroblasts":        "CAFs",
	"tumor-infiltrating lymphocyte":        "TIL",
	"tumor-infiltrating lymphocytes":       "TILs",
	"peripheral blood mononuclear cell":    "PBMC",
	"peripheral blood mononuclear cells":   "PBMCs",
	"hematopoietic stem cell":              "HSC",
	"mesenchymal stem cell":                "MSC",
	"induced pluripotent stem cell":        "iPSC",
	"embryonic stem cell":                  "ESC",
}

var builtinDrugs = map[string]string{
	// Brand → generic
	"herceptin": "trastuzumab",
	"keytruda":  "pembrolizumab",
	"opdivo":    "nivolumab",
	"5fu":       "5-Fluorouracil",
	"5-fu":      "5-Fluorouracil",
}

// Builtin returns the compiled-in synonym dictionary. It is merged under any
// file-provided mappings when USE_BUILTIN_SYNONYMS is enabled.
func Builtin() *Dictionary {
	d := New()
	tables := map[corpus.Category]map[string]string{
		corpus.Diseases:   builtinDiseases,
		corpus.Techniques: builtinTechniques,
		corpus.CellTypes:  builtinCellTypes,
		corpus.Drugs:      builtinDrugs,
	}
	for cat, table := range tables {
		for raw, canonical := range table {
			d.Add(cat, raw, canonical)
		}
	}
	return d
}
