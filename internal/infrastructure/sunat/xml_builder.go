package sunat

import (
	"fmt"
	"strconv"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"

	"github.com/dcastillo/comercio-api/internal/application/billing"
	"github.com/dcastillo/comercio-api/pkg/sunat"
)

// Namespaces oficiales UBL 2.1 y SUNAT.
const (
	// Namespace por defecto (UBL Invoice)
	NsInvoice = "urn:oasis:names:specification:ubl:schema:xsd:Invoice-2"
	// Common Aggregate Components
	NsCac = "urn:oasis:names:specification:ubl:schema:xsd:CommonAggregateComponents-2"
	// Common Basic Components
	NsCbc = "urn:oasis:names:specification:ubl:schema:xsd:CommonBasicComponents-2"
	// Extension Components
	NsExt = "urn:oasis:names:specification:ubl:schema:xsd:CommonExtensionComponents-2"
	// SUNAT Aggregate Components
	NsSac = "urn:sunat:names:specification:ubl:peru:schema:xsd:SunatAggregateComponents-1"
	// XML Digital Signature
	NsDs = "http://www.w3.org/2000/09/xmldsig#"

	monedaPEN = "PEN"
)

// InvoiceElementID valor del atributo Id del elemento raíz, referenciado por la
// firma (Reference URI="#...").
const InvoiceElementID = "comprobante"

// XMLBuilderService construye el XML UBL 2.1 del comprobante (sin firma).
type XMLBuilderService struct{}

// NewXMLBuilderService crea el servicio.
func NewXMLBuilderService() *XMLBuilderService {
	return &XMLBuilderService{}
}

// Build genera el []byte del documento Invoice según UBL 2.1 y el catálogo SUNAT.
func (s *XMLBuilderService) Build(doc *billing.DocumentoElectronico) ([]byte, error) {
	if doc == nil {
		return nil, fmt.Errorf("sunat: documento es obligatorio")
	}
	if len(doc.Lineas) == 0 {
		return nil, fmt.Errorf("sunat: el comprobante %s no tiene líneas", doc.SerieNumero)
	}

	xmlDoc := etree.NewDocument()
	xmlDoc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := xmlDoc.CreateElement("Invoice")
	root.CreateAttr("Id", InvoiceElementID)
	root.CreateAttr("xmlns", NsInvoice)
	root.CreateAttr("xmlns:cac", NsCac)
	root.CreateAttr("xmlns:cbc", NsCbc)
	root.CreateAttr("xmlns:ds", NsDs)
	root.CreateAttr("xmlns:ext", NsExt)
	root.CreateAttr("xmlns:sac", NsSac)

	// ext:UBLExtensions siempre como primer hijo: el ExtensionContent queda
	// vacío para que el firmador inyecte ds:Signature.
	ext := root.CreateElement("ext:UBLExtensions")
	ext.CreateElement("ext:UBLExtension").CreateElement("ext:ExtensionContent")

	crearTexto(root, "cbc:UBLVersionID", "2.1")
	crearTexto(root, "cbc:CustomizationID", "2.0")
	crearTexto(root, "cbc:ID", doc.SerieNumero)
	crearTexto(root, "cbc:IssueDate", doc.FechaEmision)
	crearTexto(root, "cbc:InvoiceTypeCode", doc.TipoDoc)
	// El código hash del resumen viaja como nota para la representación impresa.
	if doc.CodigoHash != "" {
		crearTexto(root, "cbc:Note", doc.CodigoHash)
	}
	crearTexto(root, "cbc:DocumentCurrencyCode", monedaPEN)
	crearTexto(root, "cbc:LineCountNumeric", strconv.Itoa(len(doc.Lineas)))

	s.writeSupplierParty(root, doc)
	s.writeCustomerParty(root, doc)
	s.writeTaxTotal(root, doc)
	s.writeLegalMonetaryTotal(root, doc)
	for i, linea := range doc.Lineas {
		s.writeInvoiceLine(root, i+1, linea)
	}

	xmlDoc.Indent(2)
	return xmlDoc.WriteToBytes()
}

func (s *XMLBuilderService) writeSupplierParty(root *etree.Element, doc *billing.DocumentoElectronico) {
	party := root.CreateElement("cac:AccountingSupplierParty").CreateElement("cac:Party")

	id := party.CreateElement("cac:PartyIdentification").CreateElement("cbc:ID")
	id.CreateAttr("schemeID", sunat.DocTipoRUC)
	id.SetText(doc.RUCEmisor)

	crearTexto(party.CreateElement("cac:PartyLegalEntity"), "cbc:RegistrationName", doc.RazonSocial)
}

func (s *XMLBuilderService) writeCustomerParty(root *etree.Element, doc *billing.DocumentoElectronico) {
	party := root.CreateElement("cac:AccountingCustomerParty").CreateElement("cac:Party")

	numDoc := doc.ClienteNumDoc
	if numDoc == "" {
		numDoc = "-"
	}
	id := party.CreateElement("cac:PartyIdentification").CreateElement("cbc:ID")
	id.CreateAttr("schemeID", doc.ClienteTipoDoc)
	id.SetText(numDoc)

	crearTexto(party.CreateElement("cac:PartyLegalEntity"), "cbc:RegistrationName", doc.ClienteNombre)
}

func (s *XMLBuilderService) writeTaxTotal(root *etree.Element, doc *billing.DocumentoElectronico) {
	taxTotal := root.CreateElement("cac:TaxTotal")
	crearMonto(taxTotal, "cbc:TaxAmount", doc.IGV)

	sub := taxTotal.CreateElement("cac:TaxSubtotal")
	crearMonto(sub, "cbc:TaxableAmount", doc.Gravado)
	crearMonto(sub, "cbc:TaxAmount", doc.IGV)

	scheme := sub.CreateElement("cac:TaxCategory").CreateElement("cac:TaxScheme")
	crearTexto(scheme, "cbc:ID", "1000")
	crearTexto(scheme, "cbc:Name", "IGV")
	crearTexto(scheme, "cbc:TaxTypeCode", "VAT")
}

func (s *XMLBuilderService) writeLegalMonetaryTotal(root *etree.Element, doc *billing.DocumentoElectronico) {
	total := root.CreateElement("cac:LegalMonetaryTotal")
	crearMonto(total, "cbc:LineExtensionAmount", doc.Gravado)
	crearMonto(total, "cbc:TaxInclusiveAmount", doc.Total)
	crearMonto(total, "cbc:PayableAmount", doc.Total)
}

func (s *XMLBuilderService) writeInvoiceLine(root *etree.Element, lineNum int, linea billing.LineaDocumento) {
	unidad := linea.Unidad
	if unidad == "" {
		unidad = sunat.UnidadUnidad
	}
	line := root.CreateElement("cac:InvoiceLine")
	crearTexto(line, "cbc:ID", strconv.Itoa(lineNum))

	qty := line.CreateElement("cbc:InvoicedQuantity")
	qty.CreateAttr("unitCode", unidad)
	qty.SetText(strconv.Itoa(linea.Cantidad))

	crearMonto(line, "cbc:LineExtensionAmount", linea.Total)
	crearTexto(line.CreateElement("cac:Item"), "cbc:Description", linea.Descripcion)
	crearMonto(line.CreateElement("cac:Price"), "cbc:PriceAmount", linea.PrecioUnitario)
}

func crearTexto(parent *etree.Element, tag, value string) {
	parent.CreateElement(tag).SetText(value)
}

func crearMonto(parent *etree.Element, tag string, value decimal.Decimal) {
	e := parent.CreateElement(tag)
	e.CreateAttr("currencyID", monedaPEN)
	e.SetText(formatDecimal(value))
}

func formatDecimal(d decimal.Decimal) string {
	return d.Round(2).StringFixed(2)
}
