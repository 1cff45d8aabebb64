package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dcastillo/comercio-api/internal/domain"
	"github.com/dcastillo/comercio-api/internal/domain/entity"
	"github.com/dcastillo/comercio-api/internal/domain/repository"
	"github.com/dcastillo/comercio-api/pkg/config"
	"github.com/dcastillo/comercio-api/pkg/sunat"
)

// BillingUseCase emisión de comprobantes electrónicos: correlativo por serie,
// código hash del resumen, XML UBL firmado y PDF. El pedido debe estar pagado.
type BillingUseCase struct {
	txRunner        TxRunner
	pedidoRepo      repository.PedidoRepository
	usuarioRepo     repository.UsuarioRepository
	varianteRepo    repository.VarianteRepository
	comprobanteRepo repository.ComprobanteRepository
	generadorXML    GeneradorXML
	generadorPDF    GeneradorPDF
	almacen         Almacen
	hashCalc        *sunat.HashCalculatorService
	cfg             config.SUNATConfig
}

func NewBillingUseCase(
	txRunner TxRunner,
	pedidoRepo repository.PedidoRepository,
	usuarioRepo repository.UsuarioRepository,
	varianteRepo repository.VarianteRepository,
	comprobanteRepo repository.ComprobanteRepository,
	generadorXML GeneradorXML,
	generadorPDF GeneradorPDF,
	almacen Almacen,
	cfg config.SUNATConfig,
) *BillingUseCase {
	return &BillingUseCase{
		txRunner:        txRunner,
		pedidoRepo:      pedidoRepo,
		usuarioRepo:     usuarioRepo,
		varianteRepo:    varianteRepo,
		comprobanteRepo: comprobanteRepo,
		generadorXML:    generadorXML,
		generadorPDF:    generadorPDF,
		almacen:         almacen,
		hashCalc:        sunat.NewHashCalculatorService(),
		cfg:             cfg,
	}
}

// Emitir genera el comprobante del pedido. Las facturas exigen RUC válido del
// cliente; las boletas usan DNI o van sin documento. Un pedido solo puede
// tener un comprobante vigente.
func (uc *BillingUseCase) Emitir(ctx context.Context, pedidoID, tipo string, now time.Time) (*entity.Comprobante, error) {
	if tipo != entity.ComprobanteBoleta && tipo != entity.ComprobanteFactura {
		return nil, domain.ErrEntradaInvalida
	}
	pedido, err := uc.pedidoRepo.GetByID(pedidoID)
	if err != nil {
		return nil, err
	}
	if pedido == nil {
		return nil, domain.ErrNoEncontrado
	}
	if pedido.Estado == entity.PedidoPendiente || pedido.Estado == entity.PedidoCancelado {
		return nil, fmt.Errorf("pedido %s en estado %s: %w", pedido.Codigo, pedido.Estado, domain.ErrConflicto)
	}
	existente, err := uc.comprobanteRepo.GetByPedido(pedidoID)
	if err != nil {
		return nil, err
	}
	if existente != nil && existente.Estado == entity.ComprobanteEmitido {
		return nil, domain.ErrDuplicado
	}

	usuario, err := uc.usuarioRepo.GetByID(pedido.UsuarioID)
	if err != nil {
		return nil, err
	}
	if usuario == nil {
		return nil, domain.ErrNoEncontrado
	}
	clienteTipoDoc, clienteNumDoc, err := documentoAdquiriente(tipo, usuario.Documento)
	if err != nil {
		return nil, err
	}

	serie := uc.cfg.SerieBoleta
	if tipo == entity.ComprobanteFactura {
		serie = uc.cfg.SerieFactura
	}

	lineas, err := uc.lineasDePedido(pedido.ID)
	if err != nil {
		return nil, err
	}

	var comprobante *entity.Comprobante
	err = uc.txRunner.Run(ctx, func(r Repos) error {
		correlativo, err := r.Comprobantes.NextCorrelativo(serie)
		if err != nil {
			return err
		}
		numero := sunat.FormatSerieNumero(serie, correlativo)
		fecha := now.Format("2006-01-02")

		hash, err := uc.hashCalc.Calculate(&sunat.ResumenParams{
			RUCEmisor:    uc.cfg.RUCEmisor,
			TipoDoc:      sunat.TipoDocForSerie(serie),
			SerieNumero:  numero,
			IGV:          pedido.Impuestos,
			Total:        pedido.Total,
			FechaEmision: fecha,
			TipoDocAdq:   clienteTipoDoc,
			NumDocAdq:    clienteNumDoc,
		})
		if err != nil {
			return err
		}

		doc := &DocumentoElectronico{
			RUCEmisor:      uc.cfg.RUCEmisor,
			RazonSocial:    uc.cfg.RazonSocial,
			TipoDoc:        sunat.TipoDocForSerie(serie),
			SerieNumero:    numero,
			FechaEmision:   fecha,
			ClienteNombre:  usuario.Nombre + " " + usuario.Apellido,
			ClienteTipoDoc: clienteTipoDoc,
			ClienteNumDoc:  clienteNumDoc,
			Lineas:         lineas,
			Gravado:        pedido.Total.Sub(pedido.Impuestos),
			IGV:            pedido.Impuestos,
			Total:          pedido.Total,
			CodigoHash:     hash,
		}

		xml, err := uc.generadorXML.Generar(doc)
		if err != nil {
			return err
		}
		if _, err := uc.almacen.Guardar(numero+".xml", xml); err != nil {
			return err
		}
		pdf, err := uc.generadorPDF.Generar(doc)
		if err != nil {
			return err
		}
		pdfURL, err := uc.almacen.Guardar(numero+".pdf", pdf)
		if err != nil {
			return err
		}

		comprobante = &entity.Comprobante{
			ID:           uuid.New().String(),
			PedidoID:     pedidoID,
			Tipo:         tipo,
			Numero:       numero,
			FechaEmision: now,
			MontoTotal:   pedido.Total,
			Impuesto:     pedido.Impuestos,
			PDFURL:       pdfURL,
			Estado:       entity.ComprobanteEmitido,
			CodigoHash:   hash,
		}
		if err := r.Comprobantes.Create(comprobante); err != nil {
			return err
		}

		return r.Logs.Create(&entity.LogAccion{
			ID:      uuid.New().String(),
			Accion:  "comprobante_emitido",
			Detalle: fmt.Sprintf("%s %s del pedido %s", tipo, numero, pedido.Codigo),
			Fecha:   now,
		})
	})
	if err != nil {
		return nil, err
	}
	return comprobante, nil
}

// Anular marca el comprobante como anulado. El número de serie no se reutiliza.
func (uc *BillingUseCase) Anular(ctx context.Context, comprobanteID string) error {
	comprobante, err := uc.comprobanteRepo.GetByID(comprobanteID)
	if err != nil {
		return err
	}
	if comprobante == nil {
		return domain.ErrNoEncontrado
	}
	if comprobante.Estado != entity.ComprobanteEmitido {
		return domain.ErrConflicto
	}
	return uc.comprobanteRepo.UpdateEstado(comprobanteID, entity.ComprobanteAnulado)
}

// GetByPedido devuelve el comprobante de un pedido (nil si no existe).
func (uc *BillingUseCase) GetByPedido(ctx context.Context, pedidoID string) (*entity.Comprobante, error) {
	return uc.comprobanteRepo.GetByPedido(pedidoID)
}

// lineasDePedido arma las líneas imprimibles; la descripción es el SKU de la
// variante, que es lo que identifica la unidad vendida.
func (uc *BillingUseCase) lineasDePedido(pedidoID string) ([]LineaDocumento, error) {
	items, err := uc.pedidoRepo.ItemsByPedido(pedidoID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, domain.ErrEntradaInvalida
	}
	var lineas []LineaDocumento
	for _, it := range items {
		descripcion := it.VarianteID
		if variante, err := uc.varianteRepo.GetByID(it.VarianteID); err == nil && variante != nil {
			descripcion = variante.SKU
		}
		lineas = append(lineas, LineaDocumento{
			Descripcion:    descripcion,
			Unidad:         sunat.UnidadUnidad,
			Cantidad:       it.Cantidad,
			PrecioUnitario: it.PrecioUnitario,
			Total:          it.TotalNeto,
		})
	}
	return lineas, nil
}

// documentoAdquiriente resuelve el tipo y número de documento del cliente según
// el tipo de comprobante (catálogo 06).
func documentoAdquiriente(tipo, documento string) (string, string, error) {
	if tipo == entity.ComprobanteFactura {
		if sunat.ValidateRUC(documento) != nil {
			return "", "", fmt.Errorf("factura requiere RUC válido: %w", domain.ErrEntradaInvalida)
		}
		return sunat.DocTipoRUC, documento, nil
	}
	if len(documento) == 8 {
		return sunat.DocTipoDNI, documento, nil
	}
	return sunat.DocTipoSinDocumento, "", nil
}
