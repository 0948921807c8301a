package main

// The lexicon maps each subtype to its surface forms: colloquial variants,
// common misspellings, accented and unaccented spellings, conjugations.
// Declaration order matters — the classifier scans entries in this order and
// detectedSubtypes keeps first-seen order.

type lexiconEntry struct {
	Subtype string
	Phrases []string
}

var lexicon = []lexiconEntry{
	{SubOutageSite, []string{
		"caída del servicio", "caida del servicio", "sitio caído", "sitio caido",
		"apagon", "apagón", "apagado total", "todo caído", "todo caido",
		"servicio caído", "servicio caido", "no funciona todo", "sin servicio",
		"planta cae", "planta caída", "caida total", "down total",
		"nada funciona", "todo dejó de funcionar", "todo se cayó",
		"toda la sede sin servicio", "toda la planta sin servicio",
		"sede sin cámaras", "sede sin camaras",
		"todas las cámaras caídas", "todas las camaras caidas",
		"sin acceso al sistema", "sistema de videovigilancia caído",
		"sistema de videovigilancia caido", "plataforma caída", "plataforma caida",
		"vms caído", "vms caido",
		"ninguna cámara funciona", "ninguna camara funciona",
		"no veo ninguna cámara", "no veo ninguna camara",
		"no hay cámaras en la sede", "no hay camaras en la sede",
		"perdimos todas las cámaras", "perdimos todas las camaras",
		"no tenemos monitoreo", "sin monitoreo",
		"no hay video en ningún monitor", "no hay video en ningun monitor",
		"ninguna cámara aparece en el monitor", "ninguna camara aparece en el monitor",
		"toda la red de cámaras está caída", "toda la red de camaras esta caida",
		"toda la red de camaras cayó", "red de cámaras caída",
		"red de camaras caida", "caída general del sistema",
		"caida general del sistema", "caída general de cámaras",
		"caida general de camaras",
		"todas las sedes sin servicio", "se cayeron todas las sedes",
		"toda la ciudad sin cámaras", "toda la ciudad sin camaras",
		"servidor principal caído", "servidor principal caido",
		"servidor vms caído", "servidor vms caido",
		"no responde el servidor vms", "no responde el vms",
		"no abre el vms", "no carga el vms", "no carga el sistema",
		"no puedo entrar al vms", "no puedo entrar al sistema",
		"caída general de red", "caida general de red",
		"sin red en el centro de monitoreo", "sin internet en el centro de monitoreo",
		"sin conexión con el sitio", "sin conexion con el sitio",
		"no hay enlace con el sitio", "perdimos enlace con el sitio",
	}},
	{SubOutagePartial, []string{
		"afecta cámaras puntuales", "afecta camaras puntuales",
		"algunas cámaras", "algunas camaras",
		"varias cámaras caídas", "varias camaras caidas",
		"sitio parcial", "pérdida parcial", "perdida parcial",
		"funciona parcialmente",
		"no funciona una zona", "zona sin servicio", "bloque sin servicio",
		"sector sin servicio", "en una parte no funciona",
		"solo en cierto sector", "solo algunas sedes",
		"solo algunas cámaras se caen", "solo algunas camaras se caen",
		"fallas en un área", "fallas en un area",
		"no se ven varias cámaras", "no se ven varias camaras",
		"no veo algunas cámaras", "no veo algunas camaras",
		"un grupo de cámaras cayó", "un grupo de camaras cayo",
		"las cámaras de un sector no funcionan",
		"las camaras de un sector no funcionan",
		"cámaras de un sector sin señal", "camaras de un sector sin señal",
		"no hay video en el piso 3", "no hay video en el piso tres",
		"no hay cámaras en el bloque b", "no hay camaras en el bloque b",
		"cámaras exteriores caídas", "camaras exteriores caidas",
		"solo las cámaras exteriores están caídas",
		"solo las camaras exteriores estan caidas",
		"solo las cámaras internas fallan", "solo las camaras internas fallan",
		"fallas en algunas sedes", "problema en solo una sede",
		"un piso sin cámaras", "un piso sin camaras",
		"dos cámaras caídas en la entrada", "dos camaras caidas en la entrada",
	}},
	{SubOutageIntermittent, []string{
		"intermitente", "va y viene", "se desconecta", "se desconecta a ratos",
		"conexión intermitente", "conexion intermitente", "intermitencias",
		"ping con perdida", "ping con pérdida", "lag intermitente",
		"a ratos funciona", "se cae y vuelve", "se reconecta sola",
		"conexión inestable", "conexion inestable", "red inestable",
		"a veces responde a veces no", "sube y baja", "latencia intermitente",
		"a ratos se pierden las cámaras", "a ratos se pierden las camaras",
		"las cámaras se caen por momentos", "las camaras se caen por momentos",
		"a veces se ven y a veces no", "a veces se ven a veces no",
		"a veces tenemos servicio y a veces no",
		"la señal se va y vuelve", "la señal se cae y regresa",
		"se corta la señal", "se corta el servicio",
		"micro cortes en el servicio", "microcortes en el servicio",
		"cortes esporádicos", "cortes esporadicos",
		"se congelan y luego vuelven", "se cae el sitio y vuelve solo",
		"se desconecta cada rato", "se desconecta muy seguido",
		"pierde el enlace de vez en cuando", "pierde la conexión de vez en cuando",
		"el enlace está inestable", "la conexión sube y baja",
	}},
	{SubCamNoResp, []string{
		"no responde", "sin imagen", "sin video", "sin vídeo", "sin señal",
		"sin senal", "offline", "fuera de linea", "fuera de línea",
		"se cayó la cámara", "se cayo la camara", "se me cayó la cámara",
		"camara caida", "cámara caída", "cámara caida", "camara no responde",
		"camara muerta", "camara apagada", "no da imagen", "no toma imagen",
		"no se ve la camara", "no se ve la cámara", "pantalla negra",
		"imagen negra", "video en negro", "camara desconectada",
		"no aparece la cámara", "camara perdida", "camara fuera de servicio",
		"no detecta la cámara", "no encuentra la cámara", "cámara sin enlace",
		"cam sin señal", "cam sin imagen",
	}},
	{SubCamFrozen, []string{
		"congelada", "imagen congelada", "freeze", "imagen fija", "se queda pegada",
		"se queda pegado", "frame asi", "frame así", "pixelada", "imagen pixelada",
		"se queda en la misma imagen", "sin movimiento", "imagen trabada",
		"imagen detenida", "se congela el video", "video congelado",
		"video se queda quieto", "se cuelga la imagen",
	}},
	{SubCamPTZ, []string{
		"ptz", "no gira", "no mueve", "no rota", "ptz muerto", "no responde ptz",
		"no apunta", "no hace zoom", "zoom no funciona", "pan tilt no funciona",
		"pan no funciona", "tilt no funciona", "no mueve la camara",
		"no gira la camara", "ptz trabado", "ptz atascado", "no recorre",
	}},
	{SubCamDark, []string{
		"oscura", "muy oscura", "se ve negro", "sin luz", "imagen muy oscura",
		"infra rojo no funciona", "infra rojo dañado", "ir falla", "ir no sirve",
		"noche sin imagen", "imagen tenue", "se ve muy oscuro",
		"no se ve nada en la noche", "modo noche no sirve", "no activa el ir",
		"visión nocturna dañada", "vision nocturna danada",
	}},
	{SubAccLoginAttempt, []string{
		"login sospechoso", "intento login", "intentos de login",
		"acceso no autorizado", "intento intrusión", "intento intrusion",
		"intruso", "hack", "hackeo", "hackearon", "se intentó entrar",
		"se intento entrar", "credenciales robadas", "credenciales comprometidas",
		"login fallido muchas veces", "muchos intentos fallidos",
		"brute force", "fuerza bruta", "ataque de fuerza bruta",
		"inicio de sesión extraño", "inicio sesion extraño",
		"actividad sospechosa en login", "intentos raros de acceso",
	}},
	{SubAccBadPriv, []string{
		"permisos", "privilegios", "permiso indebido", "acceso indebido", "rol mal asignado",
		"permiso erroneo", "permiso erróneo", "privilegios excesivos",
		"tiene permisos que no debería", "acceso mas alto del permitido",
		"rol incorrecto", "nivel de acceso incorrecto", "permisos mal configurados",
	}},
	{SubAccLocked, []string{
		"cuenta bloqueada", "usuario bloqueado", "bloqueado", "me bloquearon",
		"no puedo entrar", "no puedo acceder", "locked account",
		"usuario inhabilitado", "mi usuario ya no entra", "cuenta inactiva por bloqueo",
	}},
	{SubEvidUrgent, []string{
		"evidencia urgente", "entrega urgente", "urgente evidencia", "cadena de custodia urgente",
		"necesito evidencia ya", "urgente video", "evidencia inmediata",
		"urgente la grabación", "urgente la grabacion", "video urgente",
		"requerimiento urgente de video", "me urge la evidencia",
	}},
	{SubEvidCheck, []string{
		"verificar disponibilidad", "verificar evidencia", "hay evidencia",
		"dónde está la grabación", "donde esta la grabacion",
		"chequear grabación", "chequear grabacion", "buscar video",
		"buscar grabación", "consultar si hay video", "ver si hay grabación",
		"comprobar si existe evidencia", "revisar si quedó grabado",
	}},
	{SubEvidChain, []string{
		"cadena de custodia", "cadena custodia", "cadena de evidencia",
		"custodia", "cadena legal", "mantener custodia", "custodia del video",
		"custodia de la grabación", "custodia de la grabacion",
	}},
	{SubStorNoRecord, []string{
		"no graba", "no hay grabaciones", "sin grabaciones", "nvr no graba",
		"no guarda video", "no guarda vídeo", "no hay footage",
		"falta grabación", "falta grabacion", "no aparecen grabaciones",
		"no quedó grabado", "no registra video", "no registra nada",
		"no se está guardando", "no se esta guardando", "se deja de grabar",
		"grabación interrumpida", "grabacion interrumpida", "grabacion no se guarda",
	}},
	{SubStorRetention, []string{
		"retención", "retencion", "tiempo de retención", "tiempo de retencion",
		"borró grabaciones", "borro grabaciones", "se borró", "se borro",
		"se eliminaron grabaciones", "política retención", "politica retencion",
		"retención incorrecta", "retencion incorrecta", "retencion muy corta",
		"borra muy rápido", "borra muy rapido", "poca retención",
	}},
	{SubStorCorrupt, []string{
		"corrupto", "datos corruptos", "archivo corrupto", "archivo dañado",
		"grabación dañada", "grabacion dañada", "video corrupto", "video dañado",
		"archivos dañados", "integridad fallida", "no se puede reproducir",
		"error al reproducir", "archivo invalido", "archivo inválido",
	}},
	{SubAnalFP, []string{
		"falso positivo", "falsos positivos", "detecta cosas donde no hay",
		"alarma falsa", "alerta falsa", "demasiados falsos", "ruido en analitica",
		"ruido en analítica", "salta alertas sin motivo", "detecta de más",
		"detecta movimiento donde no hay", "demasiadas alarmas falsas",
	}},
	{SubAnalMiss, []string{
		"no detecta", "no detecta personas", "no detecta vehículos",
		"no detecta vehiculos", "miss", "missed detections", "no reconoce eventos",
		"se salta eventos", "se saltó el evento", "no activó la alarma",
		"no disparó la alerta", "no marca el evento",
	}},
	{SubAnalPerf, []string{
		"lento analitica", "lento analítica", "rendimiento analitica",
		"rendimiento analítica", "cpu alta en analitica", "cpu alta en analítica",
		"lag analitica", "lag analítica", "modelo lento", "timeout analitica",
		"timeout analítica", "tarda mucho en detectar", "demora la detección",
		"procesamiento muy lento", "analisis muy lento", "análisis muy lento",
	}},
	{SubMantPreventive, []string{
		"preventivo", "mantenimiento preventivo", "visita preventiva", "programado",
		"inspección", "revisión programada", "mantenimiento programado",
		"agenda de mantenimiento", "revisión preventiva", "chequeo general",
	}},
	{SubMantReplace, []string{
		"reemplazo equipo", "reemplazar cámara", "reemplazar camara",
		"sustitución", "cambio de equipo", "swap cámara", "swap camara",
		"equipo dañado", "cámara dañada", "camara dañada", "equipo averiado",
		"hay que cambiar la cámara", "hay que cambiar la camara",
	}},
	{SubMantPower, []string{
		"energia", "energía", "energia fallo", "corte energia", "corte de energía",
		"corte de energia", "problema eléctrico", "problema electrico",
		"cableado", "cable cortado", "sin corriente", "poe no da energía",
		"poe no da energia", "sin alimentación", "sin alimentacion",
		"se fue la luz", "fallo de luz", "no llega voltaje",
	}},
	{SubVandReport, []string{
		"daño físico", "daño fisico", "golpearon la cámara", "golpearon la camara",
		"carcasa dañada", "carcasa danada", "rotura", "vandalismo",
		"rotura cámara", "rotura camara", "impacto cámara", "impacto camara",
		"cámara rayada", "camara rayada", "la golpearon", "la tumbaron",
		"la forzaron", "le pegaron a la camara", "le pegaron a la cámara",
	}},
	{SubVandTheft, []string{
		"robo de equipo", "robaron la cámara", "robaron la camara",
		"robaron una cámara", "robaron una camara",
		"robaron camara", "robaron cámara",
		"hurto cámara", "hurto camara",
		"robo", "robó la camara", "robó la cámara",
		"equipo robado", "camara robada", "cámara robada",
		"se llevaron la camara", "se llevaron la cámara",
		"se robaron la cámara", "se robaron la camara",
		"se la robaron", "se la llevaron",
		"stolen camera", "robaron equipo", "hurtaron la camara",
		"hurtaron la cámara",
	}},
	{SubOtherDescribe, []string{
		"otro", "otra incidencia", "otro problema", "describir problema",
		"help", "soporte general", "necesito ayuda", "tengo un inconveniente",
		"no sé qué pasa", "no se que pasa", "algo está fallando",
		"algo esta fallando", "algo raro", "comportamiento extraño",
	}},
}

// priorityOrder decides which detected subtype becomes the primary one when a
// report matches several. Earlier wins. Independent of lexicon scan order.
var priorityOrder = []string{
	SubOutageSite, SubOutageIntermittent, SubOutagePartial,
	SubCamNoResp, SubCamFrozen, SubCamPTZ, SubCamDark,
	SubStorNoRecord, SubStorCorrupt, SubStorRetention,
	SubAccLoginAttempt, SubAccBadPriv, SubAccLocked,
	SubEvidUrgent, SubEvidChain, SubEvidCheck,
	SubAnalFP, SubAnalMiss, SubAnalPerf,
	SubVandTheft, SubVandReport,
	SubMantReplace, SubMantPower, SubMantPreventive,
	SubOtherDescribe,
}

// actionMap is the remediation runbook per subtype. Order inside each list is
// the order actions are suggested in.
var actionMap = map[string][]string{
	SubCamNoResp: {
		"Verificar alimentación PoE / energía",
		"Comprobar enlace de red (ping/SNMP)",
		"Reiniciar cámara remotamente",
		"Verificar estado del puerto en el switch",
		"Confirmar que la cámara responde a ping desde el NVR o VMS",
	},
	SubCamFrozen: {
		"Reiniciar proceso de captura",
		"Revisar CPU del NVR",
		"Comprobar versiones de firmware",
		"Revisar saturación de ancho de banda en el segmento de red",
		"Revisar logs del VMS para errores de streaming",
	},
	SubCamPTZ: {
		"Realizar test PTZ (pan/tilt/zoom)",
		"Verificar cableado de control",
		"Comprobar límites de recorrido",
		"Verificar configuración de presets y tours de la PTZ",
	},
	SubCamDark: {
		"Revisar IR / iluminación",
		"Ajustar exposición/ganancia",
		"Verificar lente y obstrucciones",
		"Revisar si el modo día/noche está configurado correctamente",
	},
	SubOutageSite: {
		"Escalar a infraestructura / verificar core router",
		"Comprobar enlaces ISP y energía del sitio",
		"Revisar estado de switches principales y nodos críticos",
	},
	SubOutagePartial: {
		"Inspeccionar switches PoE del sector",
		"Revisar backlog de tráfico y latencia",
		"Verificar VLAN de cámaras afectadas y rutas asociadas",
	},
	SubOutageIntermittent: {
		"Monitoreo de paquetes (ping/traceroute)",
		"Revisar logs de estabilidad del NMS",
		"Revisar errores de interfaz en los switches (CRC, drops)",
	},
	SubAccLoginAttempt: {
		"Bloquear IP sospechosa",
		"Rotar credenciales",
		"Revisar logs y origen de sesión",
		"Verificar intentos fallidos y aplicar MFA si está disponible",
	},
	SubAccBadPriv: {
		"Revisar roles y permisos",
		"Aplicar principio de menor privilegio",
		"Auditar cambios recientes",
		"Actualizar matriz de permisos según política de seguridad",
	},
	SubAccLocked: {
		"Desbloquear cuenta tras verificación",
		"Revisar política de bloqueo",
		"Validar identidad del usuario antes de habilitar acceso",
	},
	SubEvidUrgent: {
		"Priorizar recuperación y exportación de grabaciones",
		"Asignar evidencia al caso legal",
		"Asegurar la cadena de custodia y registrar quién accede al material",
	},
	SubEvidCheck: {
		"Buscar en índices de VMS por timestamp y cámara",
		"Verificar replicación en nube",
		"Confirmar que la cámara seleccionada graba en el horario solicitado",
	},
	SubEvidChain: {
		"Registrar cadena de custodia del material",
		"Verificar firmas y sellos de acceso al repositorio",
		"Limitar el acceso al material exportado",
	},
	SubStorNoRecord: {
		"Revisar servicios VMS/NVR",
		"Verificar rotación de disco y espacio disponible",
		"Comprobar si hay fallos en los discos o en la matriz de almacenamiento",
	},
	SubStorRetention: {
		"Revisar políticas de retención y backups",
		"Comprobar jobs de replicación",
		"Validar configuración de días de retención por normativa",
	},
	SubStorCorrupt: {
		"Ejecutar verificación de integridad",
		"Restaurar desde backup si procede",
		"Registrar el incidente por posible pérdida de evidencia",
	},
	SubAnalFP: {
		"Ajustar umbrales del detector",
		"Reentrenar o recalibrar modelo",
		"Filtrar zonas de interés",
		"Revisar configuración de máscaras de movimiento",
	},
	SubAnalMiss: {
		"Verificar calidad de imagen",
		"Aumentar sensibilidad del detector",
		"Reentrenar datasets",
		"Reubicar la cámara si el ángulo no es adecuado",
	},
	SubAnalPerf: {
		"Optimizar recursos (GPU/CPU)",
		"Revisar batch size y latencias de inferencia",
		"Verificar que el servidor de analítica no esté sobrecargado",
	},
	SubMantPreventive: {
		"Programar visita técnica",
		"Ejecutar checklist preventivo",
		"Actualizar bitácora de mantenimiento",
	},
	SubMantReplace: {
		"Agendar reemplazo y logística",
		"Validar garantía del equipo",
		"Asegurar disponibilidad del repuesto antes de la intervención",
	},
	SubMantPower: {
		"Verificar UPS y tableros",
		"Revisar PoE injector/switch",
		"Comprobar estado de breakers y protecciones eléctricas",
	},
	SubVandReport: {
		"Generar orden de reparación física",
		"Solicitar evidencia a campo",
		"Registrar incidente de vandalismo para seguimiento con seguridad física",
	},
	SubVandTheft: {
		"Notificar a seguridad y policía",
		"Iniciar cadena de custodia y recuperación",
		"Registrar el equipo robado en inventario y bloquear su uso",
	},
	SubOtherDescribe: {
		"Recopilar más información con el usuario",
		"Escalar a nivel 2 si no hay diagnóstico claro",
	},
}
